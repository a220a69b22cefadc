package debug

import (
	"fmt"
	"go/token"
	"strings"
)

// FormatInfo returns a formatted debug string for a checked candidate.
//
// Example:
//
//	Candidate: p.byAge$1 (three-way, slices.SortFunc argument)
//	  Run: p0 == p1
//	    status: ok
//	    1. line 12: {-1}
//	    2. line 14: {1}
//	  Finding: comparator does not return 0 when both arguments are equal
func FormatInfo(info *Info, fset *token.FileSet) string {
	if info == nil {
		return ""
	}

	var buf strings.Builder

	fmt.Fprintf(&buf, "Candidate: %s (%s, %s)\n", info.Func, info.Kind, info.Origin)

	for _, run := range info.Runs {
		fmt.Fprintf(&buf, "  Run: p%d == p%d\n", run.Cond.Left, run.Cond.Right)
		fmt.Fprintf(&buf, "    status: %s", run.Status)
		if run.Reason != "" {
			fmt.Fprintf(&buf, " (%s)", run.Reason)
		}
		buf.WriteString("\n")

		if len(run.Observations) == 0 {
			buf.WriteString("    (no returns observed)\n")
		}
		for i, obs := range run.Observations {
			fmt.Fprintf(&buf, "    %d. line %d: %s", i+1, fset.Position(obs.Pos).Line, obs.Range)
			if !obs.Expr {
				buf.WriteString(" (no expression)")
			}
			buf.WriteString("\n")
		}
	}

	if info.Finding != "" {
		fmt.Fprintf(&buf, "  Finding: %s\n", info.Finding)
	} else {
		buf.WriteString("  Finding: (none)\n")
	}

	return buf.String()
}
