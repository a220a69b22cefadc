package rangeset

import (
	"go/token"
	"math"
	"math/bits"
)

// Neg returns {-v | v ∈ s}. Negating MinInt64 wraps to itself.
func (s Set) Neg() Set {
	ivs := make([]Interval, 0, len(s.ivs)+1)
	for _, iv := range s.ivs {
		if iv.Lo == math.MinInt64 {
			ivs = append(ivs, Interval{math.MinInt64, math.MinInt64})
			if iv.Hi == math.MinInt64 {
				continue
			}
			iv.Lo++
		}
		ivs = append(ivs, Interval{-iv.Hi, -iv.Lo})
	}
	return normalize(ivs)
}

// Complement returns {^v | v ∈ s}, the bitwise complement.
func (s Set) Complement() Set {
	ivs := make([]Interval, 0, len(s.ivs))
	for _, iv := range s.ivs {
		ivs = append(ivs, Interval{^iv.Hi, ^iv.Lo})
	}
	return normalize(ivs)
}

// Add returns {a + b | a ∈ s, b ∈ o}. Overflow yields Full.
func (s Set) Add(o Set) Set {
	return s.pairwise(o, func(a, b Interval) (Interval, bool) {
		lo, ok1 := add(a.Lo, b.Lo)
		hi, ok2 := add(a.Hi, b.Hi)
		return Interval{lo, hi}, ok1 && ok2
	})
}

// Sub returns {a - b | a ∈ s, b ∈ o}. Overflow yields Full.
func (s Set) Sub(o Set) Set {
	return s.pairwise(o, func(a, b Interval) (Interval, bool) {
		lo, ok1 := sub(a.Lo, b.Hi)
		hi, ok2 := sub(a.Hi, b.Lo)
		return Interval{lo, hi}, ok1 && ok2
	})
}

// Mul returns {a * b | a ∈ s, b ∈ o}. Overflow yields Full.
func (s Set) Mul(o Set) Set {
	return s.pairwise(o, func(a, b Interval) (Interval, bool) {
		lo, hi := int64(math.MaxInt64), int64(math.MinInt64)
		for _, x := range [2]int64{a.Lo, a.Hi} {
			for _, y := range [2]int64{b.Lo, b.Hi} {
				p, ok := mul(x, y)
				if !ok {
					return Interval{}, false
				}
				lo, hi = min(lo, p), max(hi, p)
			}
		}
		return Interval{lo, hi}, true
	})
}

// Quo returns {a / b | a ∈ s, b ∈ o, b != 0} when o is a single non-zero
// point, and Full otherwise.
func (s Set) Quo(o Set) Set {
	d, ok := o.Point()
	if !ok || d == 0 || s.IsEmpty() {
		return Full()
	}
	if d == -1 && s.Contains(math.MinInt64) {
		return Full()
	}
	ivs := make([]Interval, 0, len(s.ivs))
	for _, iv := range s.ivs {
		lo, hi := iv.Lo/d, iv.Hi/d
		if lo > hi {
			lo, hi = hi, lo
		}
		ivs = append(ivs, Interval{lo, hi})
	}
	return normalize(ivs)
}

// Rem returns a bound on {a % b | a ∈ s, b ∈ o} when o is a single non-zero
// point, and Full otherwise. The sign of a % b follows a.
func (s Set) Rem(o Set) Set {
	d, ok := o.Point()
	if !ok || d == 0 || d == math.MinInt64 || s.IsEmpty() {
		return Full()
	}
	if d < 0 {
		d = -d
	}
	m := d - 1
	switch {
	case s.Min() >= 0:
		return Of(0, min(m, s.Max()))
	case s.Max() <= 0:
		return Of(max(-m, s.Min()), 0)
	}
	return Of(-m, m)
}

// Arith applies the arithmetic operator op. Operators without a range
// rule yield Full.
func (s Set) Arith(op token.Token, o Set) Set {
	if s.IsEmpty() || o.IsEmpty() {
		return Empty()
	}
	switch op {
	case token.ADD:
		return s.Add(o)
	case token.SUB:
		return s.Sub(o)
	case token.MUL:
		return s.Mul(o)
	case token.QUO:
		return s.Quo(o)
	case token.REM:
		return s.Rem(o)
	}
	return Full()
}

func (s Set) pairwise(o Set, f func(a, b Interval) (Interval, bool)) Set {
	if s.IsEmpty() || o.IsEmpty() {
		return Empty()
	}
	ivs := make([]Interval, 0, len(s.ivs)*len(o.ivs))
	for _, a := range s.ivs {
		for _, b := range o.ivs {
			iv, ok := f(a, b)
			if !ok {
				return Full()
			}
			ivs = append(ivs, iv)
		}
	}
	return normalize(ivs)
}

func add(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}

func sub(a, b int64) (int64, bool) {
	c := a - b
	if (c < a) != (b > 0) {
		return 0, false
	}
	return c, true
}

func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(abs(a), abs(b))
	if hi != 0 {
		return 0, false
	}
	if neg {
		if lo > 1<<63 {
			return 0, false
		}
		return int64(-lo), true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

func abs(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
