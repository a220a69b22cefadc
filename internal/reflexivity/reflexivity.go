// Package reflexivity checks that ordering functions treat equal
// arguments as equal.
//
// A three-way comparator must return 0 for cmp(x, x), and a less function
// must return false for less(x, x). The body is evaluated with both
// parameters bound to one value; if no explored return can yield 0
// (false), the function is reported:
//
//	func(a, b User) int {
//	    if a.Age < b.Age {
//	        return -1
//	    }
//	    return 1          ← a == b reaches here: reported
//	}
package reflexivity

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/analysis"

	"github.com/mpyw/cmpreflex/internal/candidate"
	"github.com/mpyw/cmpreflex/internal/rangeset"
	issa "github.com/mpyw/cmpreflex/internal/ssa"
	"github.com/mpyw/cmpreflex/internal/typeutil"
)

const (
	msgThreeWay = "comparator does not return 0 when both arguments are equal"
	msgLess     = "less function returns true when both arguments are equal"
)

// Finding is a reflexivity violation.
type Finding struct {
	Pos     token.Pos
	End     token.Pos
	Message string
	Fixes   []analysis.SuggestedFix
}

// Check evaluates c with its two parameters equal and returns a finding
// when no return can produce 0. file is the file declaring c; it is only
// used to locate a common ancestor of several returns and may be nil.
//
// An evaluation that gave up, or that observed no returned expression,
// never produces a finding.
func Check(c *candidate.Candidate, ev issa.Evaluator, file *ast.File) *Finding {
	if !c.SameTypes() {
		return nil
	}

	res := ev.Evaluate(c.Func, issa.Condition{Left: c.Params[0].Index, Right: c.Params[1].Index})
	if res.Status != issa.OK {
		return nil
	}

	joined := rangeset.Empty()
	var contexts []ast.Expr
	seen := make(map[ast.Expr]bool)
	for _, obs := range res.Observations {
		joined = joined.Join(obs.Range)
		if obs.Expr != nil && !seen[obs.Expr] {
			seen[obs.Expr] = true
			contexts = append(contexts, obs.Expr)
		}
	}
	if joined.Contains(0) || len(contexts) == 0 {
		return nil
	}

	f := &Finding{Message: msgThreeWay}
	if c.Kind == typeutil.Less {
		f.Message = msgLess
	}
	if anchor := Anchor(c, file, contexts); anchor != nil {
		f.Pos, f.End = anchor.Pos(), anchor.End()
		if c.Kind == typeutil.Less {
			f.Fixes = strictFix(anchor)
		}
	} else {
		f.Pos, f.End = c.Pos(), c.End()
	}
	return f
}
