package purity

import (
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	issa "github.com/mpyw/cmpreflex/internal/ssa"
)

// =============================================================================
// Inferencer
// =============================================================================

// Inferencer infers purity states of SSA functions.
//
// Functions without a body (declared in other packages) are judged by the
// contract table alone; functions with a body are inspected instruction by
// instruction, following static calls.
type Inferencer struct {
	contracts *issa.Contracts
	declared  func(*types.Func) bool
	cache     map[*ssa.Function]State
	visiting  map[*ssa.Function]bool
}

// NewInferencer creates a new purity inferencer. declared reports functions
// the user marked pure; it may be nil.
func NewInferencer(contracts *issa.Contracts, declared func(*types.Func) bool) *Inferencer {
	if declared == nil {
		declared = func(*types.Func) bool { return false }
	}
	return &Inferencer{
		contracts: contracts,
		declared:  declared,
		cache:     make(map[*ssa.Function]State),
		visiting:  make(map[*ssa.Function]bool),
	}
}

// IsPure reports whether fn is pure. It implements issa.PurityOracle.
func (inf *Inferencer) IsPure(fn *ssa.Function) bool {
	return !inf.Infer(fn).IsImpure()
}

// Infer returns the purity state of fn.
//
// Recursion is treated as impure:
//
//	func depth(n *Node) int {
//	    if n == nil { return 0 }
//	    return 1 + depth(n.Next)  ← depth is visiting → Impure
//	}
func (inf *Inferencer) Infer(fn *ssa.Function) State {
	if fn == nil {
		return Impure("unknown function", 0)
	}
	if fn.Origin() != nil {
		fn = fn.Origin()
	}
	if state, ok := inf.cache[fn]; ok {
		return state
	}
	if inf.visiting[fn] {
		return Impure("recursive call to "+fn.Name(), fn.Pos())
	}
	inf.visiting[fn] = true
	defer delete(inf.visiting, fn)

	state := inf.inferImpl(fn)
	inf.cache[fn] = state
	return state
}

func (inf *Inferencer) inferImpl(fn *ssa.Function) State {
	if obj, ok := fn.Object().(*types.Func); ok {
		if inf.declared(obj) || inf.contracts.Lookup(obj).IsPure() {
			return Pure()
		}
	}
	if len(fn.Blocks) == 0 {
		return Impure("call to "+fn.Name()+" without known contract", fn.Pos())
	}
	return inf.InferBody(fn)
}

// InferBody inspects the instructions of fn, ignoring any declaration or
// contract for fn itself.
func (inf *Inferencer) InferBody(fn *ssa.Function) State {
	state := Pure()
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			state = state.Merge(inf.inferInstr(fn, instr))
			if state.IsImpure() {
				return state
			}
		}
	}
	return state
}

// =============================================================================
// Instruction Analysis
// =============================================================================

func (inf *Inferencer) inferInstr(fn *ssa.Function, instr ssa.Instruction) State {
	switch i := instr.(type) {
	case *ssa.Store:
		// p.count = 1
		// ^^^^^^^^^^^
		// Only writes into memory allocated by fn itself stay invisible.
		if isLocal(fn, i.Addr) {
			return Pure()
		}
		return Impure("store to non-local memory", i.Pos())

	case *ssa.MapUpdate:
		if isLocal(fn, i.Map) {
			return Pure()
		}
		return Impure("map update", i.Pos())

	case *ssa.Send:
		return Impure("channel send", i.Pos())

	case *ssa.UnOp:
		if i.Op == token.ARROW {
			return Impure("channel receive", i.Pos())
		}

	case *ssa.Select:
		return Impure("select statement", i.Pos())

	case *ssa.Go:
		return Impure("go statement", i.Pos())

	case *ssa.Defer:
		return Impure("defer statement", i.Pos())

	case *ssa.Range:
		// Map iteration order is random: results may differ between calls.
		if _, isMap := i.X.Type().Underlying().(*types.Map); isMap {
			return Impure("map iteration", i.Pos())
		}

	case *ssa.Call:
		return inf.inferCall(i.Common(), i.Pos())
	}
	return Pure()
}

// inferCall analyzes a function/method call.
//
// Examples:
//
//	strings.ToLower(s)    → Pure   (contract)
//	key(u)                → Pure   (same-package function, inferred)
//	u.String()            → Impure (interface method call)
//	f(u)                  → Impure (dynamic call through a value)
//	len(s)                → Pure   (builtin)
//	println(s)            → Impure (builtin with effects)
func (inf *Inferencer) inferCall(common *ssa.CallCommon, pos token.Pos) State {
	if common.IsInvoke() {
		return Impure("interface method call "+common.Method.Name(), pos)
	}
	if b, ok := common.Value.(*ssa.Builtin); ok {
		if pureBuiltins[b.Name()] {
			return Pure()
		}
		return Impure("builtin "+b.Name(), pos)
	}
	callee := common.StaticCallee()
	if callee == nil {
		return Impure("dynamic call", pos)
	}
	if state := inf.Infer(callee); state.IsImpure() {
		return Impure("call to impure "+callee.Name()+": "+state.Reason(), pos)
	}
	return Pure()
}

var pureBuiltins = map[string]bool{
	"len":            true,
	"cap":            true,
	"min":            true,
	"max":            true,
	"real":           true,
	"imag":           true,
	"complex":        true,
	"ssa:wrapnilchk": true,
}

// isLocal reports whether addr is rooted at an allocation made by fn.
//
//	buf := make([]int, 2)
//	buf[0] = x           → IndexAddr(MakeSlice) → local
//	var p Pair
//	p.A = x              → FieldAddr(Alloc)     → local
//	g.A = x              → FieldAddr(Global)    → not local
func isLocal(fn *ssa.Function, addr ssa.Value) bool {
	for {
		switch v := addr.(type) {
		case *ssa.Alloc:
			return v.Parent() == fn
		case *ssa.MakeSlice:
			return v.Parent() == fn
		case *ssa.MakeMap:
			return v.Parent() == fn
		case *ssa.FieldAddr:
			addr = v.X
		case *ssa.IndexAddr:
			addr = v.X
		case *ssa.Slice:
			addr = v.X
		default:
			return false
		}
	}
}
