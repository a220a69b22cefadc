package ssa

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"

	"go.uber.org/zap"
	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/cmpreflex/internal/rangeset"
	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// =============================================================================
// Evaluator API
// =============================================================================

// Status is the outcome of an evaluation.
type Status int

const (
	// OK means every path was explored.
	OK Status = iota
	// GaveUp means the function could not be analyzed. Observations are
	// incomplete and must not be used to report anything.
	GaveUp
)

func (s Status) String() string {
	if s == OK {
		return "ok"
	}
	return "gave-up"
}

// Condition asserts that two parameters of the evaluated function are
// equal. Left and Right index ssa.Function.Params (receiver included).
type Condition struct {
	Left, Right int
}

// Observation is one value returned on an explored path.
type Observation struct {
	Range rangeset.Set
	Expr  ast.Expr  // returned expression; nil for implicit or bare returns
	Pos   token.Pos // position of the return statement
}

// Result is the outcome of evaluating a function under a condition.
type Result struct {
	Status       Status
	Reason       string // why the evaluation gave up
	Observations []Observation
}

// Evaluator runs a function body under a condition.
type Evaluator interface {
	Evaluate(fn *ssa.Function, cond Condition) Result
}

// PurityOracle decides whether calling a function with a body is free of
// side effects.
type PurityOracle interface {
	IsPure(fn *ssa.Function) bool
}

// Budget bounds the work of one evaluation.
type Budget struct {
	MaxSteps int // executed instructions, summed over all paths
	MaxPaths int // explored paths
}

// DefaultBudget returns the budget used when none is configured.
func DefaultBudget() Budget {
	return Budget{MaxSteps: 20000, MaxPaths: 512}
}

// Options configures an Interpreter.
type Options struct {
	Contracts *Contracts
	Purity    PurityOracle
	Budget    Budget
	Logger    *zap.Logger
}

// loopWidenAt is the visit count at which a block's phis and memory are
// havocked. The next visit ends the path: the widened iteration already
// covers every later one.
const loopWidenAt = 2

var (
	errBudget      = errors.New("budget exhausted")
	errUnsupported = errors.New("unsupported instruction")
	errMalformed   = errors.New("malformed function")
)

// =============================================================================
// Interpreter
// =============================================================================

// Interpreter is a path-sensitive symbolic interpreter over SSA.
//
// Example:
//
//	in := ssa.NewInterpreter(ssa.Options{Contracts: ssa.DefaultContracts()})
//	res := in.Evaluate(fn, ssa.Condition{Left: 0, Right: 1})
//	if res.Status == ssa.OK {
//	    for _, obs := range res.Observations { ... }
//	}
//
// The Interpreter holds no per-run state and may be shared.
type Interpreter struct {
	opts Options
	cfg  *CFGAnalyzer
}

// NewInterpreter creates an Interpreter. Zero budget fields take the
// defaults; a nil logger discards events.
func NewInterpreter(opts Options) *Interpreter {
	def := DefaultBudget()
	if opts.Budget.MaxSteps <= 0 {
		opts.Budget.MaxSteps = def.MaxSteps
	}
	if opts.Budget.MaxPaths <= 0 {
		opts.Budget.MaxPaths = def.MaxPaths
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Contracts == nil {
		opts.Contracts = DefaultContracts()
	}
	return &Interpreter{opts: opts, cfg: NewCFGAnalyzer()}
}

// Evaluate explores fn under cond and collects the returned ranges.
func (in *Interpreter) Evaluate(fn *ssa.Function, cond Condition) Result {
	r := &run{
		in:          in,
		fn:          fn,
		terms:       newTerms(),
		log:         in.opts.Logger,
		neverReturn: make(map[*ssa.Function]bool),
	}
	obs, err := r.explore(cond)
	if err != nil {
		r.log.Debug("gave up", zap.Stringer("func", fn), zap.Error(err))
		return Result{Status: GaveUp, Reason: err.Error()}
	}
	r.log.Debug("done",
		zap.Stringer("func", fn),
		zap.Int("paths", r.paths),
		zap.Int("steps", r.steps),
		zap.Int("terms", r.terms.len()),
		zap.Int("observations", len(obs)))
	return Result{Status: OK, Observations: obs}
}

// run is the state of one evaluation.
type run struct {
	in          *Interpreter
	fn          *ssa.Function
	terms       *terms
	returns     map[token.Pos]ast.Expr
	log         *zap.Logger
	neverReturn map[*ssa.Function]bool
	steps       int
	paths       int
}

func (r *run) explore(cond Condition) ([]Observation, error) {
	fn := r.fn
	if fn == nil || len(fn.Blocks) == 0 {
		return nil, fmt.Errorf("%w: no body", errMalformed)
	}
	if fn.Recover != nil {
		// A deferred recover can turn any panic into a return.
		return nil, fmt.Errorf("%w: deferred recover", errUnsupported)
	}
	if cond.Left < 0 || cond.Right < 0 || cond.Left >= len(fn.Params) || cond.Right >= len(fn.Params) {
		return nil, fmt.Errorf("%w: condition %v out of range", errMalformed, cond)
	}
	r.returns = returnExprs(fn)

	entry := newState(fn.Blocks[0])
	shared := r.terms.value(fn.Params[cond.Left])
	entry.env[fn.Params[cond.Left]] = shared
	entry.env[fn.Params[cond.Right]] = shared

	var obs []Observation
	stack := []*state{entry}
	for len(stack) > 0 {
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r.paths++
		if r.paths > r.in.opts.Budget.MaxPaths {
			return nil, fmt.Errorf("%w: more than %d paths", errBudget, r.in.opts.Budget.MaxPaths)
		}

		forks, ob, err := r.exec(st)
		if err != nil {
			return nil, err
		}
		if ob != nil {
			obs = append(obs, *ob)
		}
		stack = append(stack, forks...)
	}
	return obs, nil
}

// exec runs st until the path ends or forks. It returns the forked
// successors and, when the path ended in a return, its observation.
func (r *run) exec(st *state) ([]*state, *Observation, error) {
blocks:
	for {
		if !r.enter(st) {
			return nil, nil, nil
		}
		for _, instr := range st.block.Instrs {
			r.steps++
			if r.steps > r.in.opts.Budget.MaxSteps {
				return nil, nil, fmt.Errorf("%w: more than %d steps", errBudget, r.in.opts.Budget.MaxSteps)
			}

			switch instr := instr.(type) {
			case *ssa.Phi:
				// Bound on block entry.
			case *ssa.Jump:
				st.jump(st.block.Succs[0])
				continue blocks
			case *ssa.If:
				next, forks := r.branch(st, instr)
				if next == nil {
					return forks, nil, nil
				}
				continue blocks
			case *ssa.Return:
				return nil, r.observe(st, instr), nil
			case *ssa.Panic:
				return nil, nil, nil
			default:
				alive, err := r.step(st, instr)
				if err != nil {
					return nil, nil, err
				}
				if !alive {
					return nil, nil, nil
				}
			}
		}
		return nil, nil, fmt.Errorf("%w: block %d has no terminator", errMalformed, st.block.Index)
	}
}

// enter binds the phis of st.block for the edge st arrived on. It reports
// false when the path is covered by an earlier widened iteration.
func (r *run) enter(st *state) bool {
	b := st.block
	st.visits[b]++
	n := st.visits[b]
	if n > loopWidenAt {
		r.log.Debug("covered", zap.Int("block", b.Index))
		return false
	}
	widen := n == loopWidenAt

	var phis []*ssa.Phi
	for _, instr := range b.Instrs {
		phi, ok := instr.(*ssa.Phi)
		if !ok {
			break
		}
		phis = append(phis, phi)
	}

	// Phis are assigned in parallel: edges read the state before entry.
	vals := make([]termID, len(phis))
	for i, phi := range phis {
		if widen || st.pred < 0 || st.pred >= len(phi.Edges) {
			vals[i] = r.terms.fresh(phi.Type())
			continue
		}
		vals[i] = r.term(st, phi.Edges[st.pred])
	}
	for i, phi := range phis {
		st.env[phi] = vals[i]
	}

	if widen {
		r.havoc(st)
		r.log.Debug("widen", zap.Int("block", b.Index), zap.Int("phis", len(phis)))
	}
	return true
}

// branch follows a decided condition in place (returning st) or forks both
// feasible edges (returning nil and the forks).
func (r *run) branch(st *state, instr *ssa.If) (*state, []*state) {
	cond := r.term(st, instr.Cond)
	rng := r.rangeOf(st, cond)
	if v, ok := rng.Point(); ok {
		if v != 0 {
			return st.jump(st.block.Succs[0]), nil
		}
		return st.jump(st.block.Succs[1]), nil
	}

	var forks []*state
	for i, val := range [2]bool{true, false} {
		next := st.fork(st.block.Succs[i])
		if r.assume(next, cond, val) {
			forks = append(forks, next)
		} else {
			r.log.Debug("infeasible edge", zap.Int("block", st.block.Index), zap.Bool("cond", val))
		}
	}
	r.log.Debug("fork", zap.Int("block", st.block.Index), zap.Int("edges", len(forks)))
	return nil, forks
}

func (r *run) observe(st *state, ret *ssa.Return) *Observation {
	if len(ret.Results) != 1 {
		return nil
	}
	id := r.term(st, ret.Results[0])
	ob := &Observation{
		Range: r.rangeOf(st, id),
		Expr:  r.returns[ret.Pos()],
		Pos:   ret.Pos(),
	}
	r.log.Debug("return", zap.Int("block", st.block.Index), zap.Stringer("range", ob.Range))
	return ob
}

// =============================================================================
// Ranges and Refinement
// =============================================================================

func (r *run) rangeOf(st *state, id termID) rangeset.Set {
	if rng, ok := st.ranges[id]; ok {
		return rng
	}
	return r.terms.info(id).base
}

// narrow intersects the range of id with rng. It reports false when the
// result is empty, which makes the current path infeasible.
func (r *run) narrow(st *state, id termID, rng rangeset.Set) bool {
	if !r.terms.info(id).ranged {
		return true
	}
	cur := r.rangeOf(st, id).Intersect(rng)
	if cur.IsEmpty() {
		return false
	}
	st.ranges[id] = cur
	return true
}

// assume records that the boolean term cond has value val on this path
// and refines the operands of the comparison it came from.
func (r *run) assume(st *state, cond termID, val bool) bool {
	if !r.narrow(st, cond, rangeset.FromBool(val)) {
		return false
	}
	key := r.terms.info(cond).key
	switch key.op {
	case "unop":
		if key.tok == token.NOT {
			return r.assume(st, key.args[0], !val)
		}
	case "binop":
		if !rangeset.IsComparison(key.tok) {
			return true
		}
		op := key.tok
		if !val {
			op = rangeset.Negate(op)
		}
		x, y := key.args[0], key.args[1]
		if !r.terms.info(x).ranged || !r.terms.info(y).ranged {
			return true
		}
		satisfying := rangeset.Satisfying
		if typeutil.Wraps(r.terms.info(x).typ) {
			satisfying = unsignedSatisfying
		}
		if c, ok := r.rangeOf(st, y).Point(); ok && !r.narrow(st, x, satisfying(op, c)) {
			return false
		}
		if c, ok := r.rangeOf(st, x).Point(); ok && !r.narrow(st, y, satisfying(rangeset.Mirror(op), c)) {
			return false
		}
	}
	return true
}

// returnExprs maps return statement positions of fn's own body (not of
// nested literals) to the returned expression.
func returnExprs(fn *ssa.Function) map[token.Pos]ast.Expr {
	m := make(map[token.Pos]ast.Expr)
	var body *ast.BlockStmt
	switch syntax := fn.Syntax().(type) {
	case *ast.FuncDecl:
		body = syntax.Body
	case *ast.FuncLit:
		body = syntax.Body
	}
	if body == nil {
		return m
	}
	ast.Inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.ReturnStmt:
			if len(n.Results) == 1 {
				m[n.Return] = n.Results[0]
			}
		}
		return true
	})
	return m
}
