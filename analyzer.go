// Package cmpreflex provides a static analysis tool for detecting ordering
// functions that are not reflexive.
//
// A comparator passed to slices.SortFunc must return 0 when both arguments
// are equal, and a less function passed to sort.Slice must return false.
// Comparators that break this contract make sorting, searching and
// deduplication behave unpredictably:
//
//	slices.SortFunc(users, func(a, b User) int {
//	    if a.Age < b.Age {
//	        return -1
//	    }
//	    return 1 // want: cmp(x, x) must be 0
//	})
//
// The analyzer evaluates each ordering function with both parameters
// bound to the same value and reports it when no return can yield 0
// (false). It also reports ordering functions that ignore a parameter.
package cmpreflex

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/cmpreflex/internal"
	"github.com/mpyw/cmpreflex/internal/config"
)

// Analyzer is the main analyzer for cmpreflex.
var Analyzer = &analysis.Analyzer{
	Name:     "cmpreflex",
	Doc:      "detects comparators and less functions that are not reflexive",
	URL:      "https://github.com/mpyw/cmpreflex",
	Requires: []*analysis.Analyzer{inspect.Analyzer, buildssa.Analyzer},
	Run:      run,
}

var (
	configPath  string
	debugFilter string
)

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "path to a YAML configuration file")
	Analyzer.Flags.StringVar(&debugFilter, "debug", "", "trace the interpreter for functions whose SSA name matches this regexp")
}

func run(pass *analysis.Pass) (any, error) {
	ssaInfo := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	if err := internal.Run(pass, ssaInfo, insp, cfg, skipFiles, debugFilter); err != nil {
		return nil, err
	}
	return nil, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		// Always skip generated files
		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}
