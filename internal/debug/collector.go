package debug

import (
	"golang.org/x/tools/go/ssa"

	issa "github.com/mpyw/cmpreflex/internal/ssa"
)

var _ issa.Evaluator = (*Collector)(nil)

// Collector wraps an Evaluator and records every run.
// This keeps debug logic isolated from the main analysis code.
type Collector struct {
	issa.Evaluator
	runs map[*ssa.Function][]RunInfo
}

// NewCollector creates a Collector around base.
func NewCollector(base issa.Evaluator) *Collector {
	return &Collector{
		Evaluator: base,
		runs:      make(map[*ssa.Function][]RunInfo),
	}
}

// Evaluate runs the wrapped Evaluator and records the result.
func (c *Collector) Evaluate(fn *ssa.Function, cond issa.Condition) issa.Result {
	res := c.Evaluator.Evaluate(fn, cond)
	c.runs[fn] = append(c.runs[fn], NewRunInfo(cond, res))
	return res
}

// Runs returns the recorded runs of fn.
func (c *Collector) Runs(fn *ssa.Function) []RunInfo {
	return c.runs[fn]
}
