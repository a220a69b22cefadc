package cmpreflex

import "slices"

type Task struct {
	Priority int
	Title    string
}

// =============================================================================
// Comparator directive
// =============================================================================

//cmpreflex:comparator
func byPriority(a, b *Task) int {
	if a.Priority < b.Priority {
		return -1
	}
	return 1 // want "comparator does not return 0 when both arguments are equal"
}

//cmpreflex:comparator
func urgentFirst(a, b *Task) bool {
	return a.Priority >= b.Priority // want "less function returns true when both arguments are equal"
}

//cmpreflex:comparator
func byTitle(a, b *Task) int {
	if a.Title == b.Title {
		return 0
	}
	if a.Title < b.Title {
		return -1
	}
	return 1
}

func sortTasks(tasks []*Task) {
	slices.SortFunc(tasks, byPriority)
}

// =============================================================================
// Generic comparators
// =============================================================================

type Ordered interface {
	~int | ~int64 | ~string
}

func compareDesc[T Ordered](a, b T) int {
	if a > b {
		return -1
	}
	return 1 // want "comparator does not return 0 when both arguments are equal"
}

func sortDesc(xs []int) {
	slices.SortFunc(xs, compareDesc[int])
}
