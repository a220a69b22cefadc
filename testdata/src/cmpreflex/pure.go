package cmpreflex

import "cmp"

type Key struct {
	Org, Name string
	Rank      int
}

func (k Key) weight() int { return k.Rank*31 + len(k.Name) }

var hits int

func (k Key) countedWeight() int {
	hits++
	return k.Rank
}

//cmpreflex:pure
func (k Key) cachedWeight() int { return k.Rank * 7 }

//cmpreflex:pure
func (k Key) auditedWeight() int {
	hits++ // want "function marked cmpreflex:pure has side effects: store to non-local memory"
	return k.Rank
}

// =============================================================================
// SHOULD REPORT - Pure calls on equal arguments are equal
// =============================================================================

func compareByWeight(a, b Key) int {
	if a.weight() == b.weight() {
		return 1 // want "comparator does not return 0 when both arguments are equal"
	}
	return cmp.Compare(a.Name, b.Name)
}

func compareByCachedWeight(a, b Key) int {
	if a.cachedWeight() == b.cachedWeight() {
		return 1 // want "comparator does not return 0 when both arguments are equal"
	}
	return cmp.Compare(a.Name, b.Name)
}

// =============================================================================
// SHOULD NOT REPORT - Impure calls may differ
// =============================================================================

func compareByCountedWeight(a, b Key) int {
	if a.countedWeight() == b.countedWeight() {
		return 1
	}
	return cmp.Compare(a.Name, b.Name)
}

func compareByWeightDiff(a, b Key) int { return a.weight() - b.weight() }
