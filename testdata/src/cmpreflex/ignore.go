package cmpreflex

import (
	"cmp"
	"slices"
)

type Item struct {
	ID    int
	Score int
}

// =============================================================================
// SHOULD NOT REPORT - Ignore directives
// =============================================================================

func ignoreOnSameLine(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		if a.ID < b.ID {
			return -1
		}
		return 1 //cmpreflex:ignore
	})
}

func ignoreOnPreviousLine(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		if a.ID < b.ID {
			return -1
		}
		//cmpreflex:ignore
		return 1
	})
}

func ignoreWithSpace(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		if a.ID < b.ID {
			return -1
		}
		// cmpreflex:ignore
		return 1
	})
}

//cmpreflex:ignore
func compareItemsLegacy(a, b Item) int {
	if a.Score < b.Score {
		return -1
	}
	return 1
}

// Function-level ignore covers literals inside the function.
//
//cmpreflex:ignore
func ignoreEnclosing(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		if a.Score < b.Score {
			return -1
		}
		return 1
	})
}

// =============================================================================
// SHOULD REPORT - Unused ignore directives
// =============================================================================

func unusedIgnore(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		//cmpreflex:ignore // want "unused cmpreflex:ignore directive"
		return cmp.Compare(a.ID, b.ID)
	})
}

// Directive names must match exactly.
func misspelledIgnore(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		if a.ID < b.ID {
			return -1
		}
		//cmpreflex:ignored
		return 1 // want "comparator does not return 0 when both arguments are equal"
	})
}
