package candidate

import (
	"go/ast"
	"go/constant"
	"go/types"

	"golang.org/x/tools/go/ssa"
	xtypeutil "golang.org/x/tools/go/types/typeutil"

	issa "github.com/mpyw/cmpreflex/internal/ssa"
	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// Exemptor decides which candidates are not checked at all.
type Exemptor struct {
	info      *types.Info
	contracts *issa.Contracts
	cfg       *issa.CFGAnalyzer
}

// NewExemptor creates an Exemptor. contracts may be nil.
func NewExemptor(info *types.Info, contracts *issa.Contracts) *Exemptor {
	return &Exemptor{info: info, contracts: contracts, cfg: issa.NewCFGAnalyzer()}
}

// Exempt reports whether c is exempt and why.
//
//	func(a, b T) int { return 0 }                  ← constant zero
//	func(a, b T) bool { return false }             ← constant false
//	func(a, b T) int { panic("unordered") }        ← always fails
//	func(a, b T) int { return mustNotCompare() }   ← callee never returns
func (e *Exemptor) Exempt(c *Candidate) (bool, string) {
	body := c.Body()
	if body == nil {
		return true, "no body"
	}
	if len(body.List) == 1 {
		switch s := body.List[0].(type) {
		case *ast.ReturnStmt:
			if len(s.Results) == 1 {
				if e.isZero(s.Results[0], c.Kind) {
					return true, "returns constant " + zeroName(c.Kind)
				}
				if call, ok := ast.Unparen(s.Results[0]).(*ast.CallExpr); ok && e.fails(c.Func.Prog, call) {
					return true, "always fails"
				}
			}
		case *ast.ExprStmt:
			if call, ok := ast.Unparen(s.X).(*ast.CallExpr); ok && e.fails(c.Func.Prog, call) {
				return true, "always fails"
			}
		}
	}
	if e.cfg.NeverReturns(c.Func) {
		return true, "never returns"
	}
	return false, ""
}

func (e *Exemptor) isZero(expr ast.Expr, kind typeutil.Ordering) bool {
	tv, ok := e.info.Types[expr]
	if !ok || tv.Value == nil {
		return false
	}
	switch kind {
	case typeutil.ThreeWay:
		return tv.Value.Kind() == constant.Int && constant.Sign(tv.Value) == 0
	case typeutil.Less:
		return tv.Value.Kind() == constant.Bool && !constant.BoolVal(tv.Value)
	}
	return false
}

func zeroName(kind typeutil.Ordering) string {
	if kind == typeutil.Less {
		return "false"
	}
	return "0"
}

// fails reports whether call never returns: the panic builtin, a
// NoReturn contract, or a function of this package without a reachable
// return.
func (e *Exemptor) fails(prog *ssa.Program, call *ast.CallExpr) bool {
	if id, ok := ast.Unparen(call.Fun).(*ast.Ident); ok {
		if b, ok := e.info.Uses[id].(*types.Builtin); ok {
			return b.Name() == "panic"
		}
	}
	callee := xtypeutil.StaticCallee(e.info, call)
	if callee == nil {
		return false
	}
	if e.contracts.Lookup(callee) == issa.NoReturn {
		return true
	}
	if prog == nil {
		return false
	}
	return e.cfg.NeverReturns(prog.FuncValue(callee.Origin()))
}
