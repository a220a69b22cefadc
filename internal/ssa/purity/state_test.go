package purity

import (
	"go/token"
	"testing"
)

func TestPure(t *testing.T) {
	s := Pure()
	if s.IsImpure() {
		t.Error("Pure state should not be Impure")
	}
	if s.Reason() != "" {
		t.Errorf("Pure state should have empty reason, got %q", s.Reason())
	}
	if s.Pos().IsValid() {
		t.Error("Pure state should have no position")
	}
}

func TestImpure(t *testing.T) {
	s := Impure("channel send", token.Pos(42))
	if !s.IsImpure() {
		t.Error("Impure() should return an Impure state")
	}
	if s.Reason() != "channel send" {
		t.Errorf("Reason() = %q, want %q", s.Reason(), "channel send")
	}
	if s.Pos() != token.Pos(42) {
		t.Errorf("Pos() = %v, want 42", s.Pos())
	}
}

func TestState_Merge(t *testing.T) {
	send := Impure("channel send", token.Pos(1))
	store := Impure("store to non-local memory", token.Pos(2))

	tests := []struct {
		name       string
		a, b       State
		wantImpure bool
		wantReason string
	}{
		{"Pure ⊔ Pure", Pure(), Pure(), false, ""},
		{"Pure ⊔ Impure", Pure(), send, true, "channel send"},
		{"Impure ⊔ Pure", store, Pure(), true, "store to non-local memory"},
		{"first cause is kept", send, store, true, "channel send"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Merge(tt.b)
			if got.IsImpure() != tt.wantImpure {
				t.Errorf("Merge().IsImpure() = %v, want %v", got.IsImpure(), tt.wantImpure)
			}
			if got.Reason() != tt.wantReason {
				t.Errorf("Merge().Reason() = %q, want %q", got.Reason(), tt.wantReason)
			}
		})
	}
}
