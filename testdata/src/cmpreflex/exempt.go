package cmpreflex

import "slices"

type Node struct {
	Next *Node
	Val  int
}

// =============================================================================
// SHOULD NOT REPORT - Trivial comparators
// =============================================================================

func keepOrder(nodes []Node) {
	slices.SortStableFunc(nodes, func(a, b Node) int { return 0 })
}

func unorderable(nodes []Node) {
	slices.SortFunc(nodes, func(a, b Node) int { panic("nodes are not ordered") })
}

func compareNever(a, b Node) int { return unsupported() }

func unsupported() int { panic("unsupported") }

func compareForever(a, b Node) int {
	for {
	}
}
