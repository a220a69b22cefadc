package cmpreflex

import (
	"slices"
	"sort"
)

// =============================================================================
// SHOULD REPORT - Ordering functions ignoring a parameter
// =============================================================================

func sortByFirstOnly(users []User) {
	slices.SortFunc(users, func(a, b User) int { // want "comparator parameter b is not used"
		return a.Age - a.Age
	})
}

func sortIgnoringJ(users []User) {
	sort.Slice(users, func(i, j int) bool { // want "comparator parameter j is not used"
		return users[i].Age < users[i].Age
	})
}

func sortConstant(users []User) {
	slices.SortFunc(users, func(a, b User) int { // want "comparator parameter a is not used" "comparator parameter b is not used"
		return 1 // want "comparator does not return 0 when both arguments are equal"
	})
}

func compareBlank(_ User, b User) int { return b.Age } // want "comparator parameter _ is not used"

// =============================================================================
// SHOULD NOT REPORT
// =============================================================================

func compareUsesBoth(a, b User) int {
	d := a.Age
	return d - b.Age
}
