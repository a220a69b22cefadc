// Command gengolden regenerates the golden files of the fixes fixture by
// applying every suggested fix the analyzer reports.
//
// Run from the repository root:
//
//	go run ./testdata/cmd/gengolden
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/mpyw/cmpreflex"
)

// edit is a text edit in byte offsets of one file.
type edit struct {
	start, end int
	newText    []byte
}

func main() {
	testdata := analysistest.TestData()
	srcDir := filepath.Join(testdata, "src", "fixes")

	files, err := filepath.Glob(filepath.Join(srcDir, "*.go"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	edits := collectEdits(testdata)

	for _, file := range files {
		fmt.Printf("Generating golden for %s...\n", filepath.Base(file))
		if err := writeGolden(file, edits[file]); err != nil {
			fmt.Printf("  Error: %v\n", err)
			continue
		}
		fmt.Printf("  Created %s.golden (%d edits)\n", filepath.Base(file), len(edits[file]))
	}
}

// collectEdits runs the analyzer once and groups the edits of all
// suggested fixes by file name.
func collectEdits(testdata string) map[string][]edit {
	out := make(map[string][]edit)
	for _, result := range analysistest.Run(&noopT{}, testdata, cmpreflex.Analyzer, "fixes") {
		fset := result.Pass.Fset
		for _, diag := range result.Diagnostics {
			for _, fix := range diag.SuggestedFixes {
				for _, e := range fix.TextEdits {
					start := fset.Position(e.Pos)
					out[start.Filename] = append(out[start.Filename], edit{
						start:   start.Offset,
						end:     fset.Position(e.End).Offset,
						newText: e.NewText,
					})
				}
			}
		}
	}
	return out
}

func writeGolden(srcPath string, edits []edit) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	// Apply from the end so earlier offsets stay valid
	slices.SortFunc(edits, func(a, b edit) int { return b.start - a.start })
	for _, e := range edits {
		content = append(content[:e.start:e.start], append(e.newText, content[e.end:]...)...)
	}

	return os.WriteFile(srcPath+".golden", content, 0o644)
}

type noopT struct{}

func (t *noopT) Errorf(format string, args ...any) {}
