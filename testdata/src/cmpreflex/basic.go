// Package cmpreflex contains analyzer fixtures.
package cmpreflex

import (
	"cmp"
	"slices"
	"sort"
	"strings"
)

type User struct {
	Name string
	Age  int
}

// =============================================================================
// SHOULD REPORT - Comparators that never return 0 for equal arguments
// =============================================================================

func sortByAgeMissingEqual(users []User) {
	slices.SortFunc(users, func(a, b User) int {
		if a.Age < b.Age {
			return -1
		}
		return 1 // want "comparator does not return 0 when both arguments are equal"
	})
}

func sortByNameInverted(users []User) {
	slices.SortStableFunc(users, func(a, b User) int {
		if a.Name > b.Name {
			return -1
		}
		return 1 // want "comparator does not return 0 when both arguments are equal"
	})
}

func compareUsers(a, b User) int {
	if a.Name < b.Name {
		return -1
	}
	return 1 // want "comparator does not return 0 when both arguments are equal"
}

func compareSignOnly(a, b User) int { // want "comparator does not return 0 when both arguments are equal"
	if a.Age == 0 || b.Age == 0 {
		return 1
	}
	return 2
}

func sortByAgeOffset(users []User) {
	slices.SortFunc(users, func(a, b User) int { return a.Age - b.Age + 1 }) // want "comparator does not return 0 when both arguments are equal"
}

func lessNonStrict(users []User) {
	sort.Slice(users, func(i, j int) bool {
		return users[i].Age <= users[j].Age // want "less function returns true when both arguments are equal"
	})
}

func lessEqualOrShorter(users []User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Age == users[j].Age || len(users[i].Name) < len(users[j].Name) // want "less function returns true when both arguments are equal"
	})
}

// =============================================================================
// SHOULD NOT REPORT - Reflexive comparators
// =============================================================================

func sortByAge(users []User) {
	slices.SortFunc(users, func(a, b User) int {
		return cmp.Compare(a.Age, b.Age)
	})
}

func sortByAgeThenName(users []User) {
	slices.SortFunc(users, func(a, b User) int {
		if a.Age < b.Age {
			return -1
		}
		if a.Age > b.Age {
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
}

func sortBySubtraction(users []User) {
	slices.SortFunc(users, func(a, b User) int { return a.Age - b.Age })
}

func lessStrict(users []User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Age < users[j].Age })
}

func lessByNameDesc(users []User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Name > users[j].Name })
}

func compareOr(a, b User) int {
	return cmp.Or(
		cmp.Compare(a.Age, b.Age),
		strings.Compare(a.Name, b.Name),
	)
}

// Signature mismatch: not an ordering function.
func compareName(a User) int { return len(a.Name) }

func isSorted(users []User) bool {
	return slices.IsSortedFunc(users, func(a, b User) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

func search(users []User, age int) (int, bool) {
	// Element and target types differ: reflexivity does not apply.
	return slices.BinarySearchFunc(users, age, func(u User, target int) int {
		return cmp.Compare(u.Age, target)
	})
}
