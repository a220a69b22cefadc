package ssa

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"math"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/cmpreflex/internal/rangeset"
	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// step evaluates a non-terminating instruction. It reports false when the
// path ends at instr (a call that never returns).
func (r *run) step(st *state, instr ssa.Instruction) (bool, error) {
	switch instr := instr.(type) {
	case *ssa.DebugRef:
	case *ssa.BinOp:
		st.env[instr] = r.binOp(st, instr)
	case *ssa.UnOp:
		st.env[instr] = r.unOp(st, instr)
	case *ssa.Call:
		return r.call(st, instr)

	case *ssa.Convert:
		st.env[instr] = r.convert(st, instr, instr.X)
	case *ssa.ChangeType:
		st.env[instr] = r.convert(st, instr, instr.X)
	case *ssa.MultiConvert:
		st.env[instr] = r.convert(st, instr, instr.X)
	case *ssa.ChangeInterface:
		st.env[instr] = r.convert(st, instr, instr.X)
	case *ssa.MakeInterface:
		st.env[instr] = r.convert(st, instr, instr.X)
	case *ssa.SliceToArrayPointer:
		st.env[instr] = r.convert(st, instr, instr.X)

	case *ssa.Field:
		st.env[instr] = r.derive(instr, "field", strconv.Itoa(instr.Field), r.term(st, instr.X))
	case *ssa.FieldAddr:
		st.env[instr] = r.derive(instr, "fieldaddr", strconv.Itoa(instr.Field), r.term(st, instr.X))
	case *ssa.Index:
		st.env[instr] = r.derive(instr, "index", "", r.term(st, instr.X), r.term(st, instr.Index))
	case *ssa.IndexAddr:
		st.env[instr] = r.derive(instr, "indexaddr", "", r.term(st, instr.X), r.term(st, instr.Index))
	case *ssa.Extract:
		st.env[instr] = r.derive(instr, "extract", strconv.Itoa(instr.Index), r.term(st, instr.Tuple))
	case *ssa.TypeAssert:
		aux := instr.AssertedType.String() + "," + strconv.FormatBool(instr.CommaOk)
		st.env[instr] = r.derive(instr, "assert", aux, r.term(st, instr.X))
	case *ssa.Slice:
		aux := strconv.Itoa(int(r.optTerm(st, instr.Max)))
		st.env[instr] = r.derive(instr, "slice", aux, r.term(st, instr.X), r.optTerm(st, instr.Low), r.optTerm(st, instr.High))
	case *ssa.Lookup:
		key := termKey{
			op:    "lookup",
			args:  [3]termID{r.term(st, instr.X), r.term(st, instr.Index)},
			aux:   strconv.FormatBool(instr.CommaOk),
			epoch: st.epoch,
		}
		st.env[instr] = r.terms.intern(key, instr.Type())

	case *ssa.Alloc:
		st.env[instr] = r.alloc(instr)
	case *ssa.MakeSlice:
		st.env[instr] = r.terms.fresh(instr.Type())
	case *ssa.MakeMap:
		st.env[instr] = r.terms.fresh(instr.Type())
	case *ssa.MakeChan:
		st.env[instr] = r.terms.fresh(instr.Type())
	case *ssa.MakeClosure:
		st.env[instr] = r.terms.fresh(instr.Type())
	case *ssa.Range:
		st.env[instr] = r.terms.fresh(instr.Type())
	case *ssa.Next:
		st.env[instr] = r.terms.fresh(instr.Type())
		r.clobberShared(st)
	case *ssa.Select:
		st.env[instr] = r.terms.fresh(instr.Type())
		r.clobberShared(st)

	case *ssa.Store:
		r.store(st, r.term(st, instr.Addr), r.term(st, instr.Val))
	case *ssa.MapUpdate, *ssa.Send, *ssa.Go, *ssa.Defer, *ssa.RunDefers:
		r.clobberShared(st)

	default:
		return false, fmt.Errorf("%w: %T", errUnsupported, instr)
	}
	return true, nil
}

// term returns the term bound to v on this path.
func (r *run) term(st *state, v ssa.Value) termID {
	if id, ok := st.env[v]; ok {
		return id
	}
	switch v := v.(type) {
	case *ssa.Const:
		return r.constTerm(v)
	case *ssa.Parameter, *ssa.FreeVar, *ssa.Global, *ssa.Function, *ssa.Builtin:
		return r.terms.value(v)
	}
	id := r.terms.fresh(v.Type())
	st.env[v] = id
	return id
}

// optTerm is term for optional operands; nil maps to the zero ID.
func (r *run) optTerm(st *state, v ssa.Value) termID {
	if v == nil {
		return 0
	}
	return r.term(st, v)
}

func (r *run) constTerm(c *ssa.Const) termID {
	val := "nil"
	if c.Value != nil {
		val = c.Value.ExactString()
	}
	typ := c.Type()
	rng, exact := constRange(c)
	if !exact {
		// Not representable as int64: tracked by identity only.
		typ = nil
	}
	id := r.terms.intern(termKey{op: "const", aux: c.Type().String() + ":" + val}, typ)
	if r.terms.info(id).ranged {
		r.terms.setBase(id, rng)
	}
	return id
}

func constRange(c *ssa.Const) (rangeset.Set, bool) {
	if !typeutil.Ranged(c.Type()) {
		return rangeset.Full(), true
	}
	if c.Value == nil {
		return rangeset.Point(0), true
	}
	switch c.Value.Kind() {
	case constant.Bool:
		return rangeset.FromBool(constant.BoolVal(c.Value)), true
	case constant.Int:
		v, exact := constant.Int64Val(c.Value)
		return rangeset.Point(v), exact
	}
	return rangeset.Full(), false
}

// derive returns the hash-consed term of a memory-independent operation.
func (r *run) derive(v ssa.Value, op, aux string, args ...termID) termID {
	key := termKey{op: op, aux: aux}
	copy(key.args[:], args)
	return r.terms.intern(key, v.Type())
}

// =============================================================================
// Operators
// =============================================================================

func (r *run) binOp(st *state, v *ssa.BinOp) termID {
	x, y := r.term(st, v.X), r.term(st, v.Y)
	op := v.Op
	if op == token.GTR || op == token.GEQ {
		x, y, op = y, x, rangeset.Mirror(op)
	}
	operand := v.X.Type()
	if commutative(op, operand) && y < x {
		x, y = y, x
	}

	id := r.terms.intern(termKey{op: "binop", tok: op, args: [3]termID{x, y}}, v.Type())
	if x == y {
		if aliasesOperand(op, operand) {
			return x
		}
		if rng, ok := sameOperandResult(op, operand); ok {
			r.terms.setBase(id, rng)
		}
	}

	xi, yi := r.terms.info(x), r.terms.info(y)
	if !xi.ranged || !yi.ranged {
		return id
	}
	rx, ry := r.rangeOf(st, x), r.rangeOf(st, y)
	signed := !typeutil.Wraps(operand) || (rx.SubsetOf(nonNegative) && ry.SubsetOf(nonNegative))
	switch {
	case rangeset.IsComparison(op):
		if !signed && op != token.EQL && op != token.NEQ {
			break
		}
		if res, known := rangeset.Compare(op, rx, ry); known {
			r.narrow(st, id, rangeset.FromBool(res))
		}
	case typeutil.IsInteger(v.Type()):
		if !signed && (op == token.QUO || op == token.REM) {
			break
		}
		r.narrow(st, id, rx.Arith(op, ry).Clamp(rangeset.ForType(v.Type())))
	}
	return id
}

// nonNegative holds the values on which signed and unsigned order agree.
var nonNegative = rangeset.Of(0, math.MaxInt64)

// unsignedSatisfying is the set of bit patterns x with x op c in unsigned
// order. Patterns of c above MaxInt64 refine nothing.
func unsignedSatisfying(op token.Token, c int64) rangeset.Set {
	switch {
	case op == token.EQL || op == token.NEQ:
		return rangeset.Satisfying(op, c)
	case c < 0:
		return rangeset.Full()
	}
	low := rangeset.Satisfying(op, c).Intersect(nonNegative)
	switch op {
	case token.GTR, token.GEQ, token.NEQ:
		return low.Join(rangeset.Of(math.MinInt64, -1))
	}
	return low
}

func commutative(op token.Token, t types.Type) bool {
	switch op {
	case token.ADD:
		return !typeutil.IsString(t)
	case token.MUL, token.AND, token.OR, token.XOR, token.EQL, token.NEQ:
		return true
	}
	return false
}

// aliasesOperand reports whether x op x is x itself.
func aliasesOperand(op token.Token, t types.Type) bool {
	return (op == token.AND || op == token.OR) && typeutil.IsInteger(t)
}

// sameOperandResult returns the value of x op x when it does not depend on x.
func sameOperandResult(op token.Token, t types.Type) (rangeset.Set, bool) {
	switch op {
	case token.SUB, token.XOR, token.AND_NOT, token.REM:
		if typeutil.IsInteger(t) {
			return rangeset.Point(0), true
		}
	case token.QUO:
		// x / x panics for x == 0, so 1 on every path that returns.
		if typeutil.IsInteger(t) {
			return rangeset.Point(1), true
		}
	case token.EQL:
		if typeutil.ReflexiveEquality(t) {
			return rangeset.FromBool(true), true
		}
	case token.NEQ:
		if typeutil.ReflexiveEquality(t) {
			return rangeset.FromBool(false), true
		}
	case token.LSS:
		// NaN < NaN is false as well.
		return rangeset.FromBool(false), true
	case token.LEQ:
		if typeutil.TotallyOrdered(t) {
			return rangeset.FromBool(true), true
		}
	}
	return rangeset.Set{}, false
}

func (r *run) unOp(st *state, v *ssa.UnOp) termID {
	x := r.term(st, v.X)
	switch v.Op {
	case token.MUL:
		return r.load(st, v, x)
	case token.ARROW:
		r.clobberShared(st)
		return r.terms.fresh(v.Type())
	case token.NOT:
		if inner := r.terms.info(x).key; inner.op == "unop" && inner.tok == token.NOT {
			return inner.args[0]
		}
	}

	id := r.terms.intern(termKey{op: "unop", tok: v.Op, args: [3]termID{x}}, v.Type())
	if !r.terms.info(x).ranged {
		return id
	}
	rx := r.rangeOf(st, x)
	switch v.Op {
	case token.NOT:
		if b, ok := rx.Point(); ok {
			r.narrow(st, id, rangeset.FromBool(b == 0))
		}
	case token.SUB:
		r.narrow(st, id, rx.Neg().Clamp(rangeset.ForType(v.Type())))
	case token.XOR:
		r.narrow(st, id, rx.Complement().Clamp(rangeset.ForType(v.Type())))
	}
	return id
}

func (r *run) convert(st *state, v, x ssa.Value) termID {
	src := r.term(st, x)
	id := r.terms.intern(termKey{op: "conv", aux: v.Type().String(), args: [3]termID{src}}, v.Type())
	if r.terms.info(id).ranged && r.terms.info(src).ranged {
		r.narrow(st, id, r.rangeOf(st, src).Clamp(rangeset.ForType(v.Type())))
	}
	return id
}

// =============================================================================
// Calls
// =============================================================================

func (r *run) call(st *state, v *ssa.Call) (bool, error) {
	common := v.Common()
	if common.IsInvoke() {
		r.clobber(st, v)
		return true, nil
	}
	if b, ok := common.Value.(*ssa.Builtin); ok {
		r.builtin(st, v, b)
		return true, nil
	}
	fn := common.StaticCallee()
	if fn == nil {
		r.clobber(st, v)
		return true, nil
	}

	obj, _ := fn.Object().(*types.Func)
	if orig := fn.Origin(); orig != nil {
		obj, _ = orig.Object().(*types.Func)
	}
	k := r.in.opts.Contracts.Lookup(obj)
	if k == NoReturn || r.neverReturns(fn) {
		return false, nil
	}
	if k == Unknown && r.in.opts.Purity != nil && r.in.opts.Purity.IsPure(fn) {
		k = Pure
	}
	if !k.IsPure() {
		r.clobber(st, v)
		return true, nil
	}

	args := make([]termID, len(common.Args))
	for i, a := range common.Args {
		args[i] = r.term(st, a)
	}
	if !typeutil.HasValueSemantics(v.Type()) {
		st.env[v] = r.terms.fresh(v.Type())
		return true, nil
	}

	key := termKey{
		op:    "call",
		args:  [3]termID{r.term(st, common.Value)},
		aux:   fn.String() + "(" + joinIDs(args) + ");" + strconv.Itoa(st.local),
		epoch: st.epoch,
	}
	id := r.terms.intern(key, v.Type())
	if bound := r.in.opts.Contracts.resultBound(obj); !bound.IsEmpty() {
		r.terms.setBase(id, bound)
	}
	if len(args) >= 2 && args[0] == args[1] {
		switch k {
		case ZeroOnEqual:
			r.terms.setBase(id, rangeset.Point(0))
		case FalseOnEqual:
			r.terms.setBase(id, rangeset.FromBool(false))
		case TrueOnEqual:
			r.terms.setBase(id, rangeset.FromBool(true))
		}
	}
	st.env[v] = id
	return true, nil
}

func (r *run) builtin(st *state, v *ssa.Call, b *ssa.Builtin) {
	args := v.Common().Args
	ids := make([]termID, len(args))
	for i, a := range args {
		ids[i] = r.term(st, a)
	}

	switch b.Name() {
	case "len", "cap":
		id := r.terms.intern(termKey{op: "call", aux: b.Name(), args: [3]termID{ids[0]}}, v.Type())
		r.terms.setBase(id, rangeset.Of(0, math.MaxInt64))
		st.env[v] = id
	case "min", "max":
		if allSame(ids) {
			st.env[v] = ids[0]
			return
		}
		id := r.terms.intern(termKey{op: "call", aux: b.Name() + "(" + joinIDs(ids) + ")"}, v.Type())
		if r.terms.info(id).ranged {
			joined := rangeset.Empty()
			for _, a := range ids {
				joined = joined.Join(r.rangeOf(st, a))
			}
			r.narrow(st, id, joined)
		}
		st.env[v] = id
	case "real", "imag", "complex":
		st.env[v] = r.terms.intern(termKey{op: "call", aux: b.Name() + "(" + joinIDs(ids) + ")"}, v.Type())
	case "ssa:wrapnilchk":
		st.env[v] = ids[0]
	default:
		r.clobber(st, v)
	}
}

// clobber models a call with unknown effects.
func (r *run) clobber(st *state, v *ssa.Call) {
	st.env[v] = r.terms.fresh(v.Type())
	r.clobberShared(st)
}

func (r *run) neverReturns(fn *ssa.Function) bool {
	if nr, ok := r.neverReturn[fn]; ok {
		return nr
	}
	nr := r.in.cfg.NeverReturns(fn)
	r.neverReturn[fn] = nr
	return nr
}

func allSame(ids []termID) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids[1:] {
		if id != ids[0] {
			return false
		}
	}
	return true
}

func joinIDs(ids []termID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}
