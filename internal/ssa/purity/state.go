// Package purity infers whether functions are free of side effects.
//
// The interpreter treats calls to pure functions as values: two calls with
// equal arguments in the same memory epoch produce equal results. The
// model uses two states:
//   - Pure: deterministic, no writes to memory visible outside the call
//   - Impure: anything else, with the first offending operation
package purity

import "go/token"

// =============================================================================
// State Kind
// =============================================================================

// Kind represents the kind of purity state.
type Kind int

const (
	// KindPure represents a function without observable side effects.
	KindPure Kind = iota
	// KindImpure represents a function that may have side effects.
	KindImpure
)

// =============================================================================
// Purity State
// =============================================================================

// State represents the purity state of a function.
type State struct {
	kind   Kind
	reason string    // non-empty only for KindImpure
	pos    token.Pos // position of the offending operation, if known
}

// Pure returns a new Pure state.
func Pure() State {
	return State{kind: KindPure}
}

// Impure returns a new Impure state caused by the operation at pos.
func Impure(reason string, pos token.Pos) State {
	return State{kind: KindImpure, reason: reason, pos: pos}
}

// IsImpure returns true if the state is Impure.
func (s State) IsImpure() bool {
	return s.kind == KindImpure
}

// Reason describes why the state is Impure.
func (s State) Reason() string {
	return s.reason
}

// Pos returns the position of the operation that made the state Impure.
func (s State) Pos() token.Pos {
	return s.pos
}

// Merge merges two states using lattice rules.
//
// Lattice order: Pure < Impure
//
// Merge rules:
//   - Pure ⊔ Pure = Pure
//   - * ⊔ Impure = Impure (the first cause is kept)
func (s State) Merge(other State) State {
	if s.kind == KindImpure {
		return s
	}
	return other
}
