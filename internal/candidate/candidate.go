// Package candidate discovers the ordering functions of a package.
//
// An ordering function is a three-way comparator (func(a, b T) int) or a
// less function (func(a, b T) bool). Candidates come from five sources:
//
//	slices.SortFunc(s, func(a, b T) int { ... })  ← consumer argument
//	func (s byAge) Less(i, j int) bool { ... }    ← sort.Interface
//	func compareUsers(a, b User) int { ... }      ← name pattern
//	//cmpreflex:comparator                        ← directive
//	func (v Version) Compare(o Version) int       ← Compare method
package candidate

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// Origin tells how a candidate was discovered.
type Origin int

const (
	// FromConsumer is an argument to a comparator-consuming function.
	FromConsumer Origin = iota
	// FromSortInterface is the Less method of a sort.Interface implementation.
	FromSortInterface
	// FromName is a declaration whose name matches the configured pattern.
	FromName
	// FromDirective is a declaration marked //cmpreflex:comparator.
	FromDirective
	// FromCompareMethod is a Compare or Cmp method taking its own receiver type.
	FromCompareMethod
)

func (o Origin) String() string {
	switch o {
	case FromConsumer:
		return "consumer argument"
	case FromSortInterface:
		return "sort.Interface"
	case FromName:
		return "name pattern"
	case FromDirective:
		return "directive"
	case FromCompareMethod:
		return "compare method"
	}
	return "unknown"
}

// Param is one of the two compared parameters.
type Param struct {
	Index int        // index into ssa.Function.Params (receiver included)
	Var   *types.Var // nil for unnamed parameters
	Name  string     // "" for unnamed parameters
	Pos   token.Pos  // name position, or type position when unnamed
}

// IsBlank reports whether the parameter cannot be referenced.
func (p Param) IsBlank() bool {
	return p.Name == "" || p.Name == "_"
}

// Candidate is an ordering function found in the package.
type Candidate struct {
	Kind   typeutil.Ordering
	Origin Origin
	Via    string // consumer function, for FromConsumer
	Func   *ssa.Function
	Decl   *ast.FuncDecl // set for declarations
	Lit    *ast.FuncLit  // set for literals
	Params [2]Param
}

// Body returns the function body, or nil for declarations without one.
func (c *Candidate) Body() *ast.BlockStmt {
	if c.Decl != nil {
		return c.Decl.Body
	}
	if c.Lit != nil {
		return c.Lit.Body
	}
	return nil
}

// Pos returns the position diagnostics about the whole function use:
// the name of a declaration or the parameter list of a literal.
func (c *Candidate) Pos() token.Pos {
	if c.Decl != nil {
		return c.Decl.Name.Pos()
	}
	if c.Lit != nil {
		return c.Lit.Type.Params.Pos()
	}
	return token.NoPos
}

// End is the end position matching Pos.
func (c *Candidate) End() token.Pos {
	if c.Decl != nil {
		return c.Decl.Name.End()
	}
	if c.Lit != nil {
		return c.Lit.Type.Params.End()
	}
	return token.NoPos
}

// SameTypes reports whether both compared parameters have identical types.
func (c *Candidate) SameTypes() bool {
	params := c.Func.Params
	l, r := c.Params[0].Index, c.Params[1].Index
	if l >= len(params) || r >= len(params) {
		return false
	}
	return types.Identical(params[l].Type(), params[r].Type())
}

// Describe returns a short description for debug output.
func (c *Candidate) Describe() string {
	if c.Origin == FromConsumer && c.Via != "" {
		return c.Via + " argument"
	}
	return c.Origin.String()
}

// =============================================================================
// Parameters
// =============================================================================

// fieldParams flattens a field list into parameters, numbering from base.
//
//	func(a, b T, _ int, U)  →  a:0 b:1 _:2 "":3
func fieldParams(info *types.Info, fields *ast.FieldList, base int) []Param {
	if fields == nil {
		return nil
	}
	var out []Param
	for _, field := range fields.List {
		if len(field.Names) == 0 {
			out = append(out, Param{Index: base + len(out), Pos: field.Type.Pos()})
			continue
		}
		for _, name := range field.Names {
			p := Param{Index: base + len(out), Name: name.Name, Pos: name.Pos()}
			if v, ok := info.Defs[name].(*types.Var); ok {
				p.Var = v
			}
			out = append(out, p)
		}
	}
	return out
}

// signatureParams returns the parameters of a declaration or literal with
// the receiver first.
func signatureParams(info *types.Info, recv *ast.FieldList, ft *ast.FuncType) []Param {
	params := fieldParams(info, recv, 0)
	return append(params, fieldParams(info, ft.Params, len(params))...)
}
