package reflexivity

import (
	"go/ast"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/mpyw/cmpreflex/internal/candidate"
)

// Anchor returns the expression a finding is reported at: the only
// contributing return expression, or the innermost expression enclosing
// all of them. It returns nil when the finding belongs to the function
// as a whole.
//
//	return a.X < b.X || a.X == b.X     one context: the whole || expression
//	if ... { return 1 }; return 2      two returns: no common expression → nil
func Anchor(c *candidate.Candidate, file *ast.File, contexts []ast.Expr) ast.Expr {
	switch len(contexts) {
	case 0:
		return nil
	case 1:
		return contexts[0]
	}
	if file == nil {
		return nil
	}

	var common []ast.Node // root first
	for i, e := range contexts {
		path, _ := astutil.PathEnclosingInterval(file, e.Pos(), e.End())
		rootFirst := make([]ast.Node, len(path))
		for j, n := range path {
			rootFirst[len(path)-1-j] = n
		}
		if i == 0 {
			common = rootFirst
			continue
		}
		common = commonPrefix(common, rootFirst)
	}
	if len(common) == 0 {
		return nil
	}

	expr, ok := common[len(common)-1].(ast.Expr)
	body := c.Body()
	if !ok || body == nil || expr.Pos() < body.Pos() || expr.End() > body.End() {
		return nil
	}
	return expr
}

func commonPrefix(a, b []ast.Node) []ast.Node {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
