package debug

import (
	"go/token"

	issa "github.com/mpyw/cmpreflex/internal/ssa"
)

// Info contains collected debug information for one checked candidate.
type Info struct {
	Func    string // SSA name of the candidate
	Kind    string // "three-way" or "less"
	Origin  string // how the candidate was discovered
	Runs    []RunInfo
	Finding string // reported message, empty when nothing was reported
}

// RunInfo contains the outcome of one interpreter run.
type RunInfo struct {
	Cond         issa.Condition
	Status       issa.Status
	Reason       string
	Observations []ObservationInfo
}

// ObservationInfo contains information about a single observed return.
type ObservationInfo struct {
	Pos   token.Pos
	Range string
	Expr  bool // whether the return has a contributing expression
}

// NewRunInfo creates RunInfo from an interpreter result.
func NewRunInfo(cond issa.Condition, res issa.Result) RunInfo {
	run := RunInfo{Cond: cond, Status: res.Status, Reason: res.Reason}
	for _, obs := range res.Observations {
		run.Observations = append(run.Observations, ObservationInfo{
			Pos:   obs.Pos,
			Range: obs.Range.String(),
			Expr:  obs.Expr != nil,
		})
	}
	return run
}
