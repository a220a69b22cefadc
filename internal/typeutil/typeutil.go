// Package typeutil provides type-related utilities for ordering functions.
//
// It classifies signatures as three-way comparators or less functions and
// answers the questions the interpreter asks about operand types: whether
// a value has a meaningful integer range, whether x == x always holds, and
// whether two results of a pure call may be treated as the same value.
package typeutil

import (
	"go/types"
)

// =============================================================================
// Ordering Classification
// =============================================================================

// Ordering is the contract an ordering function is expected to follow.
type Ordering int

const (
	// NotOrdering marks a signature that is neither a comparator nor a less function.
	NotOrdering Ordering = iota
	// ThreeWay is func(a, b T) int: negative, zero or positive.
	ThreeWay
	// Less is func(a, b T) bool: a strict weak ordering.
	Less
)

func (o Ordering) String() string {
	switch o {
	case ThreeWay:
		return "three-way"
	case Less:
		return "less"
	}
	return "none"
}

// ParseOrdering converts the names used in configuration files.
func ParseOrdering(s string) (Ordering, bool) {
	switch s {
	case "three-way", "threeway", "compare":
		return ThreeWay, true
	case "less":
		return Less, true
	}
	return NotOrdering, false
}

// ClassifyResult classifies sig by its single result: integers are
// three-way comparators and booleans are less functions.
func ClassifyResult(sig *types.Signature) Ordering {
	if sig == nil || sig.Results().Len() != 1 {
		return NotOrdering
	}
	t := sig.Results().At(0).Type()
	switch {
	case IsInteger(t):
		return ThreeWay
	case IsBoolean(t):
		return Less
	}
	return NotOrdering
}

// IsSortInterface reports whether t (or *t) has the Len and Swap methods
// of sort.Interface.
func IsSortInterface(t types.Type) bool {
	if _, isPtr := t.(*types.Pointer); !isPtr {
		t = types.NewPointer(t)
	}
	mset := types.NewMethodSet(t)
	return hasMethod(mset, "Len", func(sig *types.Signature) bool {
		return sig.Params().Len() == 0 && sig.Results().Len() == 1 && IsInteger(sig.Results().At(0).Type())
	}) && hasMethod(mset, "Swap", func(sig *types.Signature) bool {
		return sig.Params().Len() == 2 && sig.Results().Len() == 0
	})
}

func hasMethod(mset *types.MethodSet, name string, ok func(*types.Signature) bool) bool {
	for i := 0; i < mset.Len(); i++ {
		fn, isFunc := mset.At(i).Obj().(*types.Func)
		if !isFunc || fn.Name() != name {
			continue
		}
		sig, _ := fn.Type().(*types.Signature)
		return sig != nil && ok(sig)
	}
	return false
}

// FuncName returns the key used to look up fn in contract tables, such as
// "strings.Compare" or "(time.Time).Compare". Instantiated generic
// functions map to their origin.
func FuncName(fn *types.Func) string {
	if fn == nil {
		return ""
	}
	return fn.Origin().FullName()
}

// =============================================================================
// Operand Types
// =============================================================================

func basicInfo(t types.Type) types.BasicInfo {
	if t == nil {
		return 0
	}
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return 0
	}
	return b.Info()
}

// IsInteger reports whether t is an integer type.
func IsInteger(t types.Type) bool { return basicInfo(t)&types.IsInteger != 0 }

// IsBoolean reports whether t is a boolean type.
func IsBoolean(t types.Type) bool { return basicInfo(t)&types.IsBoolean != 0 }

// IsString reports whether t is a string type.
func IsString(t types.Type) bool { return basicInfo(t)&types.IsString != 0 }

// Wraps reports whether t is an unsigned type with values above
// math.MaxInt64. Ranges of such values hold their two's complement bit
// pattern, so signed order does not apply to them.
func Wraps(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}
	switch b.Kind() {
	case types.Uint, types.Uint64, types.Uintptr:
		return true
	}
	return false
}

// Ranged reports whether values of t are tracked with integer ranges.
func Ranged(t types.Type) bool { return IsInteger(t) || IsBoolean(t) }

// TotallyOrdered reports whether x <= x holds for every value of t.
// Floats are excluded because of NaN; type parameters are excluded
// because their type set may contain floats.
func TotallyOrdered(t types.Type) bool {
	return basicInfo(t)&(types.IsInteger|types.IsString) != 0
}

// ReflexiveEquality reports whether x == x is true for every x of type t.
func ReflexiveEquality(t types.Type) bool {
	return reflexiveEquality(t, make(map[types.Type]bool))
}

func reflexiveEquality(t types.Type, seen map[types.Type]bool) bool {
	if seen[t] {
		return true
	}
	seen[t] = true
	switch u := t.Underlying().(type) {
	case *types.Basic:
		return u.Info()&(types.IsFloat|types.IsComplex) == 0 && u.Kind() != types.UntypedNil
	case *types.Pointer, *types.Chan:
		return true
	case *types.Array:
		return reflexiveEquality(u.Elem(), seen)
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			if !reflexiveEquality(u.Field(i).Type(), seen) {
				return false
			}
		}
		return true
	}
	return false
}

// HasValueSemantics reports whether two values of type t computed from
// equal inputs by the same pure function are indistinguishable. Types
// that carry identity (pointers, maps, channels, functions, slices,
// interfaces) do not qualify: two calls may return distinct addresses.
func HasValueSemantics(t types.Type) bool {
	return hasValueSemantics(t, make(map[types.Type]bool))
}

func hasValueSemantics(t types.Type, seen map[types.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true
	switch u := t.Underlying().(type) {
	case *types.Basic:
		return u.Kind() != types.UnsafePointer && u.Kind() != types.UntypedNil
	case *types.Array:
		return hasValueSemantics(u.Elem(), seen)
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			if !hasValueSemantics(u.Field(i).Type(), seen) {
				return false
			}
		}
		return true
	case *types.Tuple:
		for i := 0; i < u.Len(); i++ {
			if !hasValueSemantics(u.At(i).Type(), seen) {
				return false
			}
		}
		return true
	}
	return false
}
