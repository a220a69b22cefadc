package cmpreflex_test

import (
	"path/filepath"
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/mpyw/cmpreflex"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, cmpreflex.Analyzer, "cmpreflex")
}

func TestFileFilter(t *testing.T) {
	testdata := analysistest.TestData()
	// Tests that generated files are skipped
	analysistest.Run(t, testdata, cmpreflex.Analyzer, "filefilter")
}

func TestSuggestedFixes(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.RunWithSuggestedFixes(t, testdata, cmpreflex.Analyzer, "fixes")
}

func TestConfiguredAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	setFlag(t, "config", filepath.Join(testdata, "configured.yaml"))
	analysistest.Run(t, testdata, cmpreflex.Analyzer, "configured")
}

func TestInvalidConfig(t *testing.T) {
	testdata := analysistest.TestData()
	setFlag(t, "config", filepath.Join(testdata, "missing.yaml"))

	results := analysistest.Run(&noopT{T: t}, testdata, cmpreflex.Analyzer, "filefilter")
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("%s: expected a configuration error", r.Pass.Pkg.Path())
		}
	}
}

func TestInvalidDebugPattern(t *testing.T) {
	testdata := analysistest.TestData()
	setFlag(t, "debug", "(")

	results := analysistest.Run(&noopT{T: t}, testdata, cmpreflex.Analyzer, "filefilter")
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("%s: expected an error for an invalid -debug pattern", r.Pass.Pkg.Path())
		}
	}
}

// setFlag sets an analyzer flag for the duration of the test.
func setFlag(t *testing.T, name, value string) {
	t.Helper()

	f := cmpreflex.Analyzer.Flags.Lookup(name)
	if f == nil {
		t.Fatalf("flag -%s not defined", name)
	}
	old := f.Value.String()
	if err := f.Value.Set(value); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Value.Set(old) })
}

// noopT wraps testing.T to suppress errors during result collection.
// This allows running the analyzer when diagnostics or errors are the
// subject of the test rather than a failure.
type noopT struct {
	*testing.T
}

// Override error methods to be no-ops
func (n *noopT) Errorf(format string, args ...any) {}
func (n *noopT) Error(args ...any)                 {}
func (n *noopT) Fatal(args ...any)                 {}
func (n *noopT) Fatalf(format string, args ...any) {}
