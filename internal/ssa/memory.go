package ssa

import (
	"go/types"

	"golang.org/x/tools/go/ssa"
)

// =============================================================================
// Memory
//
// Loads read from a store map when the address was written on this path and
// no possibly aliasing write happened since:
//
//	var x [2]int
//	x[0] = a.N        stores[&x[0]] = t1
//	x[1] = b.N        stores[&x[1]] = t1   (&x[0] kept: constant indices differ)
//	x[0] - x[1]   →   t1 - t1 = 0
// =============================================================================

const (
	stackAlloc = "stack"
	heapAlloc  = "heap"
)

func (r *run) alloc(v *ssa.Alloc) termID {
	aux := stackAlloc
	if v.Heap {
		aux = heapAlloc
	}
	return r.terms.add(termKey{op: "alloc", aux: aux}, v.Type())
}

func (r *run) store(st *state, addr, val termID) {
	if r.isStack(addr) {
		st.local++
	} else {
		st.epoch++
	}
	for a := range st.stores {
		if r.mayAlias(a, addr) {
			delete(st.stores, a)
		}
	}
	st.stores[addr] = val
}

func (r *run) load(st *state, v *ssa.UnOp, addr termID) termID {
	if val, ok := r.forward(st, addr); ok {
		return val
	}
	key := termKey{op: "load", args: [3]termID{addr}, epoch: st.epoch}
	if r.isStack(addr) {
		key.aux, key.epoch = stackAlloc, st.local
	}
	return r.terms.intern(key, v.Type())
}

// forward returns the value last stored at addr on this path. An address
// inside a stored aggregate selects from the stored value, which is how
// spilled parameters are read:
//
//	t0 = local User (a)
//	*t0 = a
//	t1 = &t0.Age         forward(t1) = field(a, Age)
//	t2 = *t1
func (r *run) forward(st *state, addr termID) (termID, bool) {
	if val, ok := st.stores[addr]; ok {
		return val, true
	}
	info := r.terms.info(addr)
	var op string
	switch info.key.op {
	case "fieldaddr":
		op = "field"
	case "indexaddr":
		op = "index"
	default:
		return 0, false
	}
	if op == "index" && !isArrayPointer(r.terms.info(info.key.args[0]).typ) {
		return 0, false
	}
	agg, ok := r.forward(st, info.key.args[0])
	if !ok {
		return 0, false
	}
	key := termKey{op: op, aux: info.key.aux, args: [3]termID{agg, info.key.args[1]}}
	return r.terms.intern(key, pointee(info.typ)), true
}

func pointee(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	if p, ok := t.Underlying().(*types.Pointer); ok {
		return p.Elem()
	}
	return nil
}

func isArrayPointer(t types.Type) bool {
	elem := pointee(t)
	if elem == nil {
		return false
	}
	_, ok := elem.Underlying().(*types.Array)
	return ok
}

// clobberShared forgets everything known about shared memory. Stack memory
// is not reachable from callees.
func (r *run) clobberShared(st *state) {
	st.epoch++
	for a := range st.stores {
		if !r.isStack(a) {
			delete(st.stores, a)
		}
	}
}

// havoc forgets everything known about memory.
func (r *run) havoc(st *state) {
	st.epoch++
	st.local++
	clear(st.stores)
}

// root follows address arithmetic back to the base pointer.
func (r *run) root(addr termID) termID {
	for {
		key := r.terms.info(addr).key
		if key.op != "fieldaddr" && key.op != "indexaddr" {
			return addr
		}
		addr = key.args[0]
	}
}

func (r *run) isStack(addr termID) bool {
	key := r.terms.info(r.root(addr)).key
	return key.op == "alloc" && key.aux == stackAlloc
}

// mayAlias reports whether the addresses a and b may refer to overlapping
// memory.
func (r *run) mayAlias(a, b termID) bool {
	if a == b {
		return true
	}
	ka, kb := r.terms.info(a).key, r.terms.info(b).key
	if ka.op == kb.op && ka.args[0] == kb.args[0] {
		switch ka.op {
		case "fieldaddr":
			return ka.aux == kb.aux
		case "indexaddr":
			i, iok := r.terms.info(ka.args[1]).base.Point()
			j, jok := r.terms.info(kb.args[1]).base.Point()
			return !iok || !jok || i == j
		}
	}
	ra, rb := r.root(a), r.root(b)
	if r.isStack(ra) || r.isStack(rb) {
		return ra == rb
	}
	return true
}
