package purity

import (
	"go/token"

	"golang.org/x/tools/go/ssa"
)

// =============================================================================
// Violation
// =============================================================================

// Violation represents a pure function contract violation.
type Violation struct {
	Pos     token.Pos
	Message string
}

// =============================================================================
// Validator
// =============================================================================

// ValidateFunction validates that a function marked as pure satisfies the
// pure contract. The marking itself is not trusted: the body is inspected
// as if it had no directive, and the first side effect found is reported.
//
//	//cmpreflex:pure
//	func key(u *User) string {
//	    u.hits++          ← store to non-local memory
//	    return u.Name
//	}
func ValidateFunction(fn *ssa.Function, inf *Inferencer) []Violation {
	if fn == nil || fn.Blocks == nil {
		return nil
	}

	state := inf.InferBody(fn)
	if !state.IsImpure() {
		return nil
	}

	pos := state.Pos()
	if !pos.IsValid() {
		pos = fn.Pos()
	}
	return []Violation{{
		Pos:     pos,
		Message: "function marked cmpreflex:pure has side effects: " + state.Reason(),
	}}
}
