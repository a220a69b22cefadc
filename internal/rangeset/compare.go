package rangeset

import (
	"go/token"
	"math"
)

// Compare decides x op y from the ranges of x and y. The second result is
// false when the ranges do not decide the comparison.
func Compare(op token.Token, x, y Set) (result, known bool) {
	if x.IsEmpty() || y.IsEmpty() {
		return false, false
	}
	switch op {
	case token.LSS:
		if x.Max() < y.Min() {
			return true, true
		}
		if x.Min() >= y.Max() {
			return false, true
		}
	case token.LEQ:
		if x.Max() <= y.Min() {
			return true, true
		}
		if x.Min() > y.Max() {
			return false, true
		}
	case token.GTR:
		return Compare(token.LSS, y, x)
	case token.GEQ:
		return Compare(token.LEQ, y, x)
	case token.EQL:
		a, ok1 := x.Point()
		b, ok2 := y.Point()
		if ok1 && ok2 && a == b {
			return true, true
		}
		if x.Intersect(y).IsEmpty() {
			return false, true
		}
	case token.NEQ:
		r, ok := Compare(token.EQL, x, y)
		return !r, ok
	}
	return false, false
}

// Satisfying returns the values v for which v op c holds.
func Satisfying(op token.Token, c int64) Set {
	switch op {
	case token.LSS:
		if c == math.MinInt64 {
			return Empty()
		}
		return Of(math.MinInt64, c-1)
	case token.LEQ:
		return Of(math.MinInt64, c)
	case token.GTR:
		if c == math.MaxInt64 {
			return Empty()
		}
		return Of(c+1, math.MaxInt64)
	case token.GEQ:
		return Of(c, math.MaxInt64)
	case token.EQL:
		return Point(c)
	case token.NEQ:
		return Full().Without(c)
	}
	return Full()
}

// Negate returns the comparison that holds exactly when op does not.
func Negate(op token.Token) token.Token {
	switch op {
	case token.LSS:
		return token.GEQ
	case token.LEQ:
		return token.GTR
	case token.GTR:
		return token.LEQ
	case token.GEQ:
		return token.LSS
	case token.EQL:
		return token.NEQ
	case token.NEQ:
		return token.EQL
	}
	return op
}

// Mirror returns the comparison op' such that x op y == y op' x.
func Mirror(op token.Token) token.Token {
	switch op {
	case token.LSS:
		return token.GTR
	case token.LEQ:
		return token.GEQ
	case token.GTR:
		return token.LSS
	case token.GEQ:
		return token.LEQ
	}
	return op
}

// IsComparison reports whether op is one of == != < <= > >=.
func IsComparison(op token.Token) bool {
	switch op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return true
	}
	return false
}
