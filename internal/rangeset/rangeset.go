// Package rangeset implements the integer domain used by the interpreter.
//
// A Set is a normalized union of disjoint closed int64 intervals. Keeping
// several intervals instead of a single hull matters for comparators: the
// join of {-1} and {1} must not contain 0.
//
//	{-1} ∪ {1}      = {-1, 1}      Contains(0) == false
//	[0, 3] ∪ [4, 9] = {0..9}       adjacent intervals are merged
//
// Sets are values; every operation returns a new Set.
package rangeset

import (
	"go/types"
	"math"
	"sort"
	"strconv"
	"strings"
)

// maxIntervals bounds the number of intervals kept in a Set. When an
// operation would produce more, the closest neighbours are merged.
const maxIntervals = 8

// Interval is a closed range [Lo, Hi].
type Interval struct {
	Lo, Hi int64
}

// Set is a union of disjoint, non-adjacent intervals sorted by Lo.
// The zero value is the empty set.
type Set struct {
	ivs []Interval
}

// Empty returns the empty set.
func Empty() Set { return Set{} }

// Point returns {v}.
func Point(v int64) Set { return Set{ivs: []Interval{{v, v}}} }

// Of returns [lo, hi], or the empty set when lo > hi.
func Of(lo, hi int64) Set {
	if lo > hi {
		return Set{}
	}
	return Set{ivs: []Interval{{lo, hi}}}
}

// Full returns the set of all int64 values.
func Full() Set { return Of(math.MinInt64, math.MaxInt64) }

// Bool returns {0, 1}, the range of an unknown boolean.
func Bool() Set { return Of(0, 1) }

// FromBool returns {1} for true and {0} for false.
func FromBool(b bool) Set {
	if b {
		return Point(1)
	}
	return Point(0)
}

// Union returns the normalized union of the given intervals.
func Union(ivs ...Interval) Set {
	return normalize(append([]Interval(nil), ivs...))
}

// ForType returns the range of values representable by t.
//
// Booleans map to {0, 1}. Unsigned 64-bit types get the full range: their
// values are held as the int64 with the same bits. Non-integer types get
// the full range too.
func ForType(t types.Type) Set {
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return Full()
	}
	switch b.Kind() {
	case types.Bool, types.UntypedBool:
		return Bool()
	case types.Int8:
		return Of(math.MinInt8, math.MaxInt8)
	case types.Int16:
		return Of(math.MinInt16, math.MaxInt16)
	case types.Int32:
		return Of(math.MinInt32, math.MaxInt32)
	case types.Uint8:
		return Of(0, math.MaxUint8)
	case types.Uint16:
		return Of(0, math.MaxUint16)
	case types.Uint32:
		return Of(0, math.MaxUint32)
	}
	return Full()
}

// IsEmpty reports whether s has no values.
func (s Set) IsEmpty() bool { return len(s.ivs) == 0 }

// IsFull reports whether s covers every int64.
func (s Set) IsFull() bool {
	return len(s.ivs) == 1 && s.ivs[0].Lo == math.MinInt64 && s.ivs[0].Hi == math.MaxInt64
}

// Contains reports whether v is in s.
func (s Set) Contains(v int64) bool {
	i := sort.Search(len(s.ivs), func(i int) bool { return s.ivs[i].Hi >= v })
	return i < len(s.ivs) && s.ivs[i].Lo <= v
}

// Point returns the only value of s, if s is a single point.
func (s Set) Point() (int64, bool) {
	if len(s.ivs) == 1 && s.ivs[0].Lo == s.ivs[0].Hi {
		return s.ivs[0].Lo, true
	}
	return 0, false
}

// Min returns the smallest value of s. It returns 0 for the empty set.
func (s Set) Min() int64 {
	if s.IsEmpty() {
		return 0
	}
	return s.ivs[0].Lo
}

// Max returns the largest value of s. It returns 0 for the empty set.
func (s Set) Max() int64 {
	if s.IsEmpty() {
		return 0
	}
	return s.ivs[len(s.ivs)-1].Hi
}

// Intervals returns a copy of the intervals of s.
func (s Set) Intervals() []Interval {
	return append([]Interval(nil), s.ivs...)
}

// Equal reports whether s and o contain the same values.
func (s Set) Equal(o Set) bool {
	if len(s.ivs) != len(o.ivs) {
		return false
	}
	for i := range s.ivs {
		if s.ivs[i] != o.ivs[i] {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every value of s is in o.
func (s Set) SubsetOf(o Set) bool {
	return s.Intersect(o).Equal(s)
}

// Join returns s ∪ o.
func (s Set) Join(o Set) Set {
	if s.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return s
	}
	ivs := make([]Interval, 0, len(s.ivs)+len(o.ivs))
	ivs = append(ivs, s.ivs...)
	ivs = append(ivs, o.ivs...)
	return normalize(ivs)
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	var out []Interval
	i, j := 0, 0
	for i < len(s.ivs) && j < len(o.ivs) {
		a, b := s.ivs[i], o.ivs[j]
		lo, hi := max(a.Lo, b.Lo), min(a.Hi, b.Hi)
		if lo <= hi {
			out = append(out, Interval{lo, hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return Set{ivs: out}
}

// Without returns s with v removed.
func (s Set) Without(v int64) Set {
	if !s.Contains(v) {
		return s
	}
	var out []Interval
	for _, iv := range s.ivs {
		if v < iv.Lo || v > iv.Hi {
			out = append(out, iv)
			continue
		}
		if iv.Lo < v {
			out = append(out, Interval{iv.Lo, v - 1})
		}
		if v < iv.Hi {
			out = append(out, Interval{v + 1, iv.Hi})
		}
	}
	return Set{ivs: out}
}

// Clamp returns s when it fits in bounds, and bounds otherwise.
// Values outside bounds can only come from wrap-around, so the whole
// bounds range is the sound answer.
func (s Set) Clamp(bounds Set) Set {
	if s.SubsetOf(bounds) {
		return s
	}
	return bounds
}

// String formats s as "{-1, 1}", "{0..9}" or "{}".
func (s Set) String() string {
	parts := make([]string, len(s.ivs))
	for i, iv := range s.ivs {
		if iv.Lo == iv.Hi {
			parts[i] = format(iv.Lo)
		} else {
			parts[i] = format(iv.Lo) + ".." + format(iv.Hi)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func format(v int64) string {
	switch v {
	case math.MinInt64:
		return "min"
	case math.MaxInt64:
		return "max"
	}
	return strconv.FormatInt(v, 10)
}

// normalize sorts and merges ivs in place and caps the interval count.
func normalize(ivs []Interval) Set {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Lo < ivs[j].Lo })
	out := ivs[:0]
	for _, iv := range ivs {
		if iv.Lo > iv.Hi {
			continue
		}
		if n := len(out); n > 0 && touches(out[n-1], iv) {
			out[n-1].Hi = max(out[n-1].Hi, iv.Hi)
			continue
		}
		out = append(out, iv)
	}
	for len(out) > maxIntervals {
		out = mergeClosest(out)
	}
	if len(out) == 0 {
		return Set{}
	}
	return Set{ivs: out}
}

// touches reports whether b overlaps or directly follows a (a.Lo <= b.Lo).
func touches(a, b Interval) bool {
	return a.Hi == math.MaxInt64 || a.Hi+1 >= b.Lo
}

// mergeClosest merges the two neighbouring intervals with the smallest gap.
func mergeClosest(ivs []Interval) []Interval {
	best := 0
	bestGap := uint64(math.MaxUint64)
	for i := 0; i+1 < len(ivs); i++ {
		gap := uint64(ivs[i+1].Lo) - uint64(ivs[i].Hi)
		if gap < bestGap {
			best, bestGap = i, gap
		}
	}
	ivs[best].Hi = ivs[best+1].Hi
	return append(ivs[:best+1], ivs[best+2:]...)
}
