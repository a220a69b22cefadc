package reflexivity

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/analysis"
)

// strictFix rewrites a non-strict comparison returned by a less function:
//
//	return s[i].Age <= s[j].Age   →   return s[i].Age < s[j].Age
func strictFix(anchor ast.Expr) []analysis.SuggestedFix {
	bin, ok := ast.Unparen(anchor).(*ast.BinaryExpr)
	if !ok {
		return nil
	}
	var strict string
	switch bin.Op {
	case token.LEQ:
		strict = token.LSS.String()
	case token.GEQ:
		strict = token.GTR.String()
	default:
		return nil
	}
	return []analysis.SuggestedFix{{
		Message: "Use " + strict + " for a strict ordering",
		TextEdits: []analysis.TextEdit{{
			Pos:     bin.OpPos,
			End:     bin.OpPos + token.Pos(len(bin.Op.String())),
			NewText: []byte(strict),
		}},
	}}
}
