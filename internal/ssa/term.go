package ssa

import (
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/cmpreflex/internal/rangeset"
	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// =============================================================================
// Terms
//
// A term is a symbolic value. Terms are hash-consed: evaluating the same
// operation on the same operand terms yields the same term, so two equal
// terms denote equal runtime values. This is how the assumption p1 == p2
// propagates:
//
//	func(a, b User) int { return a.Age - b.Age }
//
//	a, b        → t1 (both parameters bound to one term)
//	a.Age       → t2 = field(t1, Age)
//	b.Age       → t2 (same key)
//	a.Age-b.Age → t2 - t2 = 0
// =============================================================================

// termID identifies a term. The zero ID means "no operand".
type termID int32

// termKey is the hash-consing key of a derived term.
type termKey struct {
	op    string
	tok   token.Token // operator of unary and binary operations
	args  [3]termID
	aux   string
	epoch int // memory epoch for operations that read memory, otherwise 0
}

type termInfo struct {
	key    termKey
	typ    types.Type
	ranged bool
	base   rangeset.Set // range known independently of the path
}

// terms is the term table of one interpreter run.
type terms struct {
	ids    map[termKey]termID
	opaque map[ssa.Value]termID
	infos  []termInfo // indexed by termID; infos[0] is unused
}

func newTerms() *terms {
	return &terms{
		ids:    make(map[termKey]termID),
		opaque: make(map[ssa.Value]termID),
		infos:  make([]termInfo, 1),
	}
}

// intern returns the term for key, creating it with the type range of typ.
func (t *terms) intern(key termKey, typ types.Type) termID {
	if id, ok := t.ids[key]; ok {
		return id
	}
	id := t.add(key, typ)
	t.ids[key] = id
	return id
}

// fresh returns a new term that is equal to no other term.
func (t *terms) fresh(typ types.Type) termID {
	return t.add(termKey{op: "fresh"}, typ)
}

// value returns the stable term of a value defined outside the function
// body (receiver, free variable, global, function, builtin).
func (t *terms) value(v ssa.Value) termID {
	if id, ok := t.opaque[v]; ok {
		return id
	}
	var typ types.Type
	if _, isBuiltin := v.(*ssa.Builtin); !isBuiltin {
		typ = v.Type()
	}
	id := t.add(termKey{op: "value", aux: v.Name()}, typ)
	t.opaque[v] = id
	return id
}

func (t *terms) add(key termKey, typ types.Type) termID {
	info := termInfo{key: key, typ: typ, base: rangeset.Full()}
	if typ != nil && typeutil.Ranged(typ) {
		info.ranged = true
		info.base = rangeset.ForType(typ)
	}
	t.infos = append(t.infos, info)
	return termID(len(t.infos) - 1)
}

// setBase narrows the path-independent range of id.
func (t *terms) setBase(id termID, r rangeset.Set) {
	info := &t.infos[id]
	info.base = info.base.Intersect(r)
}

func (t *terms) info(id termID) termInfo { return t.infos[id] }

func (t *terms) len() int { return len(t.infos) - 1 }
