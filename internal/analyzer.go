// Package internal provides the analysis flow for ordering function checks.
//
// # Architecture
//
// This package serves as the bridge between the public analyzer and the
// internal checking machinery:
//
//	┌─────────────────────────────────────────────────────────────────────────┐
//	│                         Analysis Flow                                   │
//	│                                                                         │
//	│   analyzer.go (public)                                                  │
//	│        │                                                                │
//	│        ▼                                                                │
//	│   internal/analyzer.go   ◀── You are here                               │
//	│   ┌─────────────────────────────────────────────────────────────────┐   │
//	│   │  Run()                                                          │   │
//	│   │    │                                                            │   │
//	│   │    ├── Validate pure function contracts                         │   │
//	│   │    ├── Discover candidates (internal/candidate)                 │   │
//	│   │    ├── Skip excluded files, ignored and exempt functions        │   │
//	│   │    ├── Unused parameters (internal/paramuse)                    │   │
//	│   │    ├── Reflexivity (internal/reflexivity + internal/ssa)        │   │
//	│   │    └── Apply ignore directives                                  │   │
//	│   └─────────────────────────────────────────────────────────────────┘   │
//	└─────────────────────────────────────────────────────────────────────────┘
//
// # Responsibilities
//
//   - Orchestrate the checks for all candidates of a package
//   - Handle function-level and line-level ignore directives
//   - Report unused ignore directives
//   - Validate pure function contracts
package internal

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/ssa"
	"go.uber.org/zap"

	"github.com/mpyw/cmpreflex/internal/candidate"
	"github.com/mpyw/cmpreflex/internal/config"
	"github.com/mpyw/cmpreflex/internal/debug"
	"github.com/mpyw/cmpreflex/internal/directive"
	"github.com/mpyw/cmpreflex/internal/paramuse"
	"github.com/mpyw/cmpreflex/internal/reflexivity"
	issa "github.com/mpyw/cmpreflex/internal/ssa"
	"github.com/mpyw/cmpreflex/internal/ssa/purity"
)

// =============================================================================
// Entry Point
// =============================================================================

// Run checks the ordering functions of the package.
//
// This is the main entry point called from the public analyzer.
//
// Processing flow:
//  1. Build ignore maps and the pure function set for non-skipped files
//  2. Validate functions marked //cmpreflex:pure
//  3. Discover candidates
//  4. Skip candidates in excluded files, under //cmpreflex:ignore, or exempt
//  5. Run the enabled checks and report findings (unless suppressed by a
//     line-level ignore)
//  6. Report unused ignore directives
func Run(
	pass *analysis.Pass,
	ssaInfo *buildssa.SSA,
	insp *inspector.Inspector,
	cfg *config.Config,
	skipFiles map[string]bool,
	debugFilter string,
) error {
	tracer, err := debug.NewTracer(debugFilter)
	if err != nil {
		return err
	}
	defer tracer.Sync()

	ignoreMaps := make(map[string]directive.IgnoreMap)
	funcIgnores := make(map[string]map[token.Pos]directive.FunctionIgnoreEntry)
	pureFuncs := directive.NewPureFuncSet(pass.Fset)
	var pureDecls []*ast.FuncDecl

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = directive.BuildIgnoreMap(pass.Fset, file)
		funcIgnores[filename] = directive.BuildFunctionIgnoreSet(pass.Fset, file)
		pureDecls = append(pureDecls, pureFuncs.AddFile(file, pass.TypesInfo)...)
	}

	contracts := buildContracts(cfg)
	inf := purity.NewInferencer(contracts, pureFuncs.Contains)
	chk := newChecker(pass, ignoreMaps)

	// Validate pure function contracts
	for _, fd := range pureDecls {
		obj, ok := pass.TypesInfo.Defs[fd.Name].(*types.Func)
		if !ok {
			continue
		}
		fn := ssaInfo.Pkg.Prog.FuncValue(obj)
		if fn == nil || chk.ignored(fn, funcIgnores) {
			continue
		}
		for _, v := range purity.ValidateFunction(fn, inf) {
			chk.report(v.Pos, token.NoPos, v.Message, nil)
		}
	}

	finder := candidate.NewFinder(pass.TypesInfo, ssaInfo.SrcFuncs, candidate.Options{
		Consumers:   consumers(cfg),
		NamePattern: cfg.NameRegexp(),
	})
	exemptor := candidate.NewExemptor(pass.TypesInfo, contracts)
	base := issa.NewInterpreter(interpreterOptions(cfg, contracts, inf, nil))

	for _, c := range finder.Find(insp) {
		pos := c.Pos()
		if !pos.IsValid() {
			continue
		}

		// Skip candidates in excluded files
		if skipFiles[pass.Fset.Position(pos).Filename] {
			continue
		}

		// Check if the enclosing function is ignored
		if chk.ignored(c.Func, funcIgnores) {
			continue
		}

		log := tracer.For(c.Func)
		if exempt, reason := exemptor.Exempt(c); exempt {
			log.Debug("exempt", zap.String("reason", reason))
			continue
		}

		if cfg.Checks.UnusedParams {
			for _, f := range paramuse.Check(c, pass.TypesInfo) {
				chk.report(f.Pos, f.End, f.Message, nil)
			}
		}

		if cfg.Checks.Reflexivity {
			chk.checkReflexivity(c, base, tracer, func() *issa.Interpreter {
				return issa.NewInterpreter(interpreterOptions(cfg, contracts, inf, log))
			})
		}
	}

	// Report unused ignore directives
	for _, file := range pass.Files {
		ignoreMap := ignoreMaps[pass.Fset.Position(file.Pos()).Filename]
		if ignoreMap == nil {
			continue
		}
		for _, pos := range ignoreMap.GetUnusedIgnores() {
			pass.Reportf(pos, "unused cmpreflex:ignore directive")
		}
	}
	return nil
}

// buildContracts extends the default contracts with configured entries.
func buildContracts(cfg *config.Config) *issa.Contracts {
	contracts := issa.DefaultContracts()
	for _, name := range cfg.Pure {
		contracts.Add(name, issa.Pure)
	}
	for _, name := range cfg.ZeroOnEqual {
		contracts.Add(name, issa.ZeroOnEqual)
	}
	return contracts
}

func consumers(cfg *config.Config) []candidate.Consumer {
	out := make([]candidate.Consumer, 0, len(cfg.Consumers))
	for _, c := range cfg.Consumers {
		out = append(out, candidate.Consumer{Func: c.Func, Arg: c.Arg, Kind: c.Ordering()})
	}
	return out
}

func interpreterOptions(cfg *config.Config, contracts *issa.Contracts, inf *purity.Inferencer, log *zap.Logger) issa.Options {
	return issa.Options{
		Contracts: contracts,
		Purity:    inf,
		Budget:    issa.Budget{MaxSteps: cfg.Budget.MaxSteps, MaxPaths: cfg.Budget.MaxPaths},
		Logger:    log,
	}
}

// =============================================================================
// Checker
// =============================================================================

// checker wraps reporting with ignore directive handling.
//
// It ensures:
//   - Findings at the same position are only reported once
//   - Line-level ignore directives suppress findings
//   - Findings are reported through the analysis.Pass
type checker struct {
	pass       *analysis.Pass                 // For reporting diagnostics
	ignoreMaps map[string]directive.IgnoreMap // Line-level ignore directives per file
	reported   map[token.Pos]bool             // Deduplication of reports
}

func newChecker(pass *analysis.Pass, ignoreMaps map[string]directive.IgnoreMap) *checker {
	return &checker{
		pass:       pass,
		ignoreMaps: ignoreMaps,
		reported:   make(map[token.Pos]bool),
	}
}

// ignored reports whether the top-level function enclosing fn carries
// //cmpreflex:ignore, marking the directive as used.
func (c *checker) ignored(fn *ssa.Function, funcIgnores map[string]map[token.Pos]directive.FunctionIgnoreEntry) bool {
	top := fn
	for top.Parent() != nil {
		top = top.Parent()
	}
	filename := c.pass.Fset.Position(top.Pos()).Filename
	entry, ok := funcIgnores[filename][top.Pos()]
	if !ok {
		return false
	}
	if ignoreMap := c.ignoreMaps[filename]; ignoreMap != nil {
		ignoreMap.MarkUsed(entry.DirectiveLine)
	}
	return true
}

// checkReflexivity runs the reflexivity check for cand. Traced candidates
// get their own interpreter from traced and a summary on stderr.
func (c *checker) checkReflexivity(cand *candidate.Candidate, base *issa.Interpreter, tracer *debug.Tracer, traced func() *issa.Interpreter) {
	file := c.fileOf(cand.Pos())

	if !tracer.Enabled(cand.Func) {
		if f := reflexivity.Check(cand, base, file); f != nil {
			c.report(f.Pos, f.End, f.Message, f.Fixes)
		}
		return
	}

	collector := debug.NewCollector(traced())
	f := reflexivity.Check(cand, collector, file)
	info := &debug.Info{
		Func:   cand.Func.String(),
		Kind:   cand.Kind.String(),
		Origin: cand.Describe(),
		Runs:   collector.Runs(cand.Func),
	}
	if f != nil {
		info.Finding = f.Message
		c.report(f.Pos, f.End, f.Message, f.Fixes)
	}
	fmt.Fprint(os.Stderr, debug.FormatInfo(info, c.pass.Fset))
}

func (c *checker) fileOf(pos token.Pos) *ast.File {
	for _, f := range c.pass.Files {
		if f.FileStart <= pos && pos <= f.FileEnd {
			return f
		}
	}
	return nil
}

// report reports a finding if not ignored or already reported.
func (c *checker) report(pos, end token.Pos, message string, fixes []analysis.SuggestedFix) {
	// Deduplicate: the same position may be found by several checks
	if c.reported[pos] {
		return
	}
	c.reported[pos] = true

	// Check if line is ignored
	position := c.pass.Fset.Position(pos)
	if ignoreMap := c.ignoreMaps[position.Filename]; ignoreMap != nil && ignoreMap.ShouldIgnore(position.Line) {
		return // Suppressed by ignore directive
	}

	c.pass.Report(analysis.Diagnostic{
		Pos:            pos,
		End:            end,
		Message:        message,
		SuggestedFixes: fixes,
	})
}
