// Package filefilter tests file filtering functionality.
// Tests that:
// - Generated files are always skipped (see generated.go)
// - Test files are analyzed by default (see code_test.go)
package filefilter

import "slices"

// Point is a test model.
type Point struct {
	X, Y int
}

// sortBroken should be reported in regular files.
func sortBroken(ps []Point) {
	slices.SortFunc(ps, func(a, b Point) int {
		if a.X < b.X {
			return -1
		}
		return 1 // want "comparator does not return 0 when both arguments are equal"
	})
}

// sortGood compares both coordinates.
func sortGood(ps []Point) {
	slices.SortFunc(ps, func(a, b Point) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
}
