// Package paramuse reports ordering functions that ignore one of the two
// compared parameters.
//
//	func(a, b User) int { return a.Age - a.Age }  ← b is not used
//
// Such a function cannot order its arguments: the result depends on one
// side only.
package paramuse

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/mpyw/cmpreflex/internal/candidate"
)

// Finding is an unused parameter.
type Finding struct {
	Pos     token.Pos
	End     token.Pos
	Message string
}

// Check returns one finding per compared parameter that the body never
// references. Blank and unnamed parameters cannot be referenced and are
// always reported.
func Check(c *candidate.Candidate, info *types.Info) []Finding {
	body := c.Body()
	if body == nil {
		return nil
	}

	unused := make(map[*types.Var]bool, 2)
	for _, p := range c.Params {
		if p.Var != nil && !p.IsBlank() {
			unused[p.Var] = true
		}
	}
	if len(unused) > 0 {
		ast.Inspect(body, func(n ast.Node) bool {
			if len(unused) == 0 {
				return false
			}
			if id, ok := n.(*ast.Ident); ok {
				if v, ok := info.Uses[id].(*types.Var); ok {
					delete(unused, v)
				}
			}
			return true
		})
	}

	var out []Finding
	for i, p := range c.Params {
		if !p.IsBlank() && !unused[p.Var] {
			continue
		}
		out = append(out, Finding{
			Pos:     p.Pos,
			End:     p.Pos + token.Pos(max(len(p.Name), 1)),
			Message: fmt.Sprintf("comparator parameter %s is not used", displayName(p, i)),
		})
	}
	return out
}

// displayName names unnamed parameters by their position among the two
// compared ones.
func displayName(p candidate.Param, i int) string {
	if p.Name == "" {
		return fmt.Sprintf("#%d", i+1)
	}
	return p.Name
}
