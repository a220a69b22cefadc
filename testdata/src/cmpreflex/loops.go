package cmpreflex

import "cmp"

// =============================================================================
// SHOULD NOT REPORT - Lexicographic comparators
// =============================================================================

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func compareRange(a, b []string) int {
	for i := range min(len(a), len(b)) {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// =============================================================================
// SHOULD REPORT - Loops that never reach an equal result
// =============================================================================

func comparePrefix(a, b []int) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
	}
	return 1 // want "comparator does not return 0 when both arguments are equal"
}
