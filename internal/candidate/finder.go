package candidate

import (
	"go/ast"
	"go/types"
	"regexp"
	"sort"

	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/ssa"
	xtypeutil "golang.org/x/tools/go/types/typeutil"

	"github.com/mpyw/cmpreflex/internal/directive"
	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// Options configures a Finder.
type Options struct {
	// Consumers are added to DefaultConsumers; entries with the same name
	// replace the default.
	Consumers []Consumer
	// NamePattern selects (T, T) int declarations by name. Nil disables
	// the name source.
	NamePattern *regexp.Regexp
}

// Finder discovers the candidates of one package.
type Finder struct {
	info      *types.Info
	opts      Options
	consumers map[string]Consumer
	bySyntax  map[ast.Node]*ssa.Function
	byObj     map[*types.Func]*ssa.Function
	locals    map[*types.Var]*ast.FuncLit
	seen      map[*ssa.Function]bool
	found     []*Candidate
}

// NewFinder creates a Finder over the source functions of a package, as
// listed by buildssa.SSA.SrcFuncs.
func NewFinder(info *types.Info, funcs []*ssa.Function, opts Options) *Finder {
	f := &Finder{
		info:      info,
		opts:      opts,
		consumers: consumerTable(opts.Consumers),
		bySyntax:  make(map[ast.Node]*ssa.Function),
		byObj:     make(map[*types.Func]*ssa.Function),
		seen:      make(map[*ssa.Function]bool),
	}
	var add func(fn *ssa.Function)
	add = func(fn *ssa.Function) {
		if syntax := fn.Syntax(); syntax != nil {
			if _, dup := f.bySyntax[syntax]; !dup {
				f.bySyntax[syntax] = fn
			}
		}
		if obj, ok := fn.Object().(*types.Func); ok {
			f.byObj[obj] = fn
		}
		for _, anon := range fn.AnonFuncs {
			add(anon)
		}
	}
	for _, fn := range funcs {
		add(fn)
	}
	return f
}

// Find returns the candidates sorted by position. Each function appears
// at most once; when several sources find it, the first source in this
// order wins: consumer argument, sort.Interface, name pattern, directive,
// compare method.
func (f *Finder) Find(insp *inspector.Inspector) []*Candidate {
	f.locals = f.collectLocals(insp)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		f.fromCall(n.(*ast.CallExpr))
	})
	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		f.fromDecl(n.(*ast.FuncDecl))
	})

	sort.SliceStable(f.found, func(i, j int) bool {
		return f.found[i].Func.Pos() < f.found[j].Func.Pos()
	})
	return f.found
}

// =============================================================================
// Local Function Variables
// =============================================================================

// collectLocals maps variables assigned exactly once, to a function
// literal:
//
//	byAge := func(a, b User) int { ... }  ← byAge → literal
//	slices.SortFunc(users, byAge)
//
// A variable assigned more than once is ambiguous and not resolved.
func (f *Finder) collectLocals(insp *inspector.Inspector) map[*types.Var]*ast.FuncLit {
	count := make(map[*types.Var]int)
	lits := make(map[*types.Var]*ast.FuncLit)

	record := func(name *ast.Ident, value ast.Expr) {
		v, ok := f.info.ObjectOf(name).(*types.Var)
		if !ok {
			return
		}
		count[v]++
		if lit, ok := ast.Unparen(value).(*ast.FuncLit); ok {
			lits[v] = lit
		}
	}

	insp.Preorder([]ast.Node{(*ast.AssignStmt)(nil), (*ast.ValueSpec)(nil)}, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.AssignStmt:
			for i, lhs := range n.Lhs {
				name, ok := ast.Unparen(lhs).(*ast.Ident)
				if !ok {
					continue
				}
				var value ast.Expr
				if len(n.Lhs) == len(n.Rhs) {
					value = n.Rhs[i]
				}
				record(name, value)
			}
		case *ast.ValueSpec:
			if len(n.Names) != len(n.Values) {
				return
			}
			for i, name := range n.Names {
				record(name, n.Values[i])
			}
		}
	})

	for v, c := range count {
		if c != 1 {
			delete(lits, v)
		}
	}
	return lits
}

// =============================================================================
// Consumer Arguments
// =============================================================================

func (f *Finder) fromCall(call *ast.CallExpr) {
	callee, ok := xtypeutil.Callee(f.info, call).(*types.Func)
	if !ok {
		return
	}
	c, ok := f.consumers[typeutil.FuncName(callee)]
	if !ok || c.Arg < 0 || c.Arg >= len(call.Args) {
		return
	}
	f.fromArg(call.Args[c.Arg], c)
}

// fromArg resolves an ordering function argument:
//
//	func(a, b T) int { ... }   literal
//	compareT                   function, or variable holding a literal
//	compareT[int]              generic instantiation
//	pkg.CompareT               qualified function
//	T.Compare                  method expression: receiver is the first operand
//	s.less                     method value: receiver is bound
func (f *Finder) fromArg(arg ast.Expr, c Consumer) {
	arg = ast.Unparen(arg)
	switch x := arg.(type) {
	case *ast.IndexExpr:
		arg = x.X
	case *ast.IndexListExpr:
		arg = x.X
	}

	switch x := ast.Unparen(arg).(type) {
	case *ast.FuncLit:
		f.addSyntax(x, c.Kind, FromConsumer, c.Func, 0)

	case *ast.Ident:
		switch obj := f.info.Uses[x].(type) {
		case *types.Func:
			f.addObj(obj, c.Kind, FromConsumer, c.Func, false)
		case *types.Var:
			if lit, ok := f.locals[obj]; ok {
				f.addSyntax(lit, c.Kind, FromConsumer, c.Func, 0)
			}
		}

	case *ast.SelectorExpr:
		sel, ok := f.info.Selections[x]
		if !ok {
			if obj, ok := f.info.Uses[x.Sel].(*types.Func); ok {
				f.addObj(obj, c.Kind, FromConsumer, c.Func, false)
			}
			return
		}
		obj, ok := sel.Obj().(*types.Func)
		if !ok {
			return
		}
		switch sel.Kind() {
		case types.MethodVal:
			f.addObj(obj, c.Kind, FromConsumer, c.Func, false)
		case types.MethodExpr:
			f.addObj(obj, c.Kind, FromConsumer, c.Func, true)
		}
	}
}

// addObj adds the function declared for obj in this package. With
// withRecv the receiver is the first compared operand.
func (f *Finder) addObj(obj *types.Func, kind typeutil.Ordering, origin Origin, via string, withRecv bool) {
	fn, ok := f.byObj[obj.Origin()]
	if !ok {
		return
	}
	decl, ok := fn.Syntax().(*ast.FuncDecl)
	if !ok {
		return
	}
	first := recvLen(decl)
	if withRecv {
		first = 0
	}
	f.addSyntax(decl, kind, origin, via, first)
}

// =============================================================================
// Declarations
// =============================================================================

func (f *Finder) fromDecl(decl *ast.FuncDecl) {
	obj, ok := f.info.Defs[decl.Name].(*types.Func)
	if !ok {
		return
	}
	sig, ok := obj.Type().(*types.Signature)
	if !ok {
		return
	}
	kind := typeutil.ClassifyResult(sig)
	if kind == typeutil.NotOrdering {
		return
	}
	recv := recvLen(decl)

	switch {
	case kind == typeutil.Less && isSortLess(decl, sig):
		f.addSyntax(decl, kind, FromSortInterface, "", recv)
	case kind == typeutil.ThreeWay && f.matchesName(decl) && sameParamTypes(sig):
		f.addSyntax(decl, kind, FromName, "", recv)
	case hasComparatorDirective(decl):
		if sig.Params().Len() == 2 {
			f.addSyntax(decl, kind, FromDirective, "", recv)
		} else if isCompareMethod(sig) {
			f.addSyntax(decl, kind, FromDirective, "", 0)
		}
	case kind == typeutil.ThreeWay && isCompareMethodName(decl.Name.Name) && isCompareMethod(sig):
		f.addSyntax(decl, kind, FromCompareMethod, "", 0)
	}
}

func (f *Finder) matchesName(decl *ast.FuncDecl) bool {
	return f.opts.NamePattern != nil && f.opts.NamePattern.MatchString(decl.Name.Name)
}

// isSortLess reports whether decl is Less(i, j int) bool on a
// sort.Interface implementation.
func isSortLess(decl *ast.FuncDecl, sig *types.Signature) bool {
	if decl.Name.Name != "Less" || sig.Recv() == nil || sig.Params().Len() != 2 {
		return false
	}
	for i := range 2 {
		if !typeutil.IsInteger(sig.Params().At(i).Type()) {
			return false
		}
	}
	return typeutil.IsSortInterface(sig.Recv().Type())
}

// sameParamTypes reports whether sig is (T, T).
func sameParamTypes(sig *types.Signature) bool {
	return sig.Params().Len() == 2 && types.Identical(sig.Params().At(0).Type(), sig.Params().At(1).Type())
}

func isCompareMethodName(name string) bool {
	return name == "Compare" || name == "Cmp"
}

// isCompareMethod reports whether sig is a method taking one operand of
// its own receiver type:
//
//	func (v Version) Compare(o Version) int
//	func (x *Int) Cmp(y *Int) int
func isCompareMethod(sig *types.Signature) bool {
	if sig.Recv() == nil || sig.Params().Len() != 1 {
		return false
	}
	return types.Identical(sig.Recv().Type(), sig.Params().At(0).Type())
}

func hasComparatorDirective(decl *ast.FuncDecl) bool {
	if decl.Doc == nil {
		return false
	}
	for _, c := range decl.Doc.List {
		if directive.IsComparatorDirective(c.Text) {
			return true
		}
	}
	return false
}

func recvLen(decl *ast.FuncDecl) int {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return 0
	}
	return 1
}

// =============================================================================
// Registration
// =============================================================================

// addSyntax registers the function of syntax, comparing the two
// parameters starting at index first. Functions with a different number
// of remaining parameters, or a result that does not match kind, are
// ignored.
func (f *Finder) addSyntax(syntax ast.Node, kind typeutil.Ordering, origin Origin, via string, first int) {
	fn, ok := f.bySyntax[syntax]
	if !ok || f.seen[fn] {
		return
	}
	if typeutil.ClassifyResult(fn.Signature) != kind {
		return
	}

	c := &Candidate{Kind: kind, Origin: origin, Via: via, Func: fn}
	var params []Param
	switch s := syntax.(type) {
	case *ast.FuncDecl:
		c.Decl = s
		params = signatureParams(f.info, s.Recv, s.Type)
	case *ast.FuncLit:
		c.Lit = s
		params = signatureParams(f.info, nil, s.Type)
	default:
		return
	}
	if len(params)-first != 2 {
		return
	}
	c.Params = [2]Param{params[first], params[first+1]}

	f.seen[fn] = true
	f.found = append(f.found, c)
}
