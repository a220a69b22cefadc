package filefilter

import "slices"

// sortInTest is reported when -test=true (default).
func sortInTest(ps []Point) {
	slices.SortFunc(ps, func(a, b Point) int {
		if a.Y < b.Y {
			return -1
		}
		return 1 // want "comparator does not return 0 when both arguments are equal"
	})
}
