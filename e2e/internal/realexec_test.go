// Package internal contains end-to-end tests that run the ordering functions
// the analyzer reports against the standard library. They document how a
// comparator that is not reflexive breaks searching, comparing and sorting.
package internal

import (
	"cmp"
	"slices"
	"sort"
	"testing"
)

// User is a test model.
type User struct {
	Name string
	Age  int
}

// compareMissingEqual never returns 0.
func compareMissingEqual(a, b User) int {
	if a.Age < b.Age {
		return -1
	}
	return 1
}

func compareAge(a, b User) int {
	return cmp.Compare(a.Age, b.Age)
}

func users() []User {
	return []User{
		{Name: "alice", Age: 20},
		{Name: "bob", Age: 30},
		{Name: "carol", Age: 30},
		{Name: "dave", Age: 40},
	}
}

// TestBinarySearchMissingEqual verifies that a search never finds an
// element when the comparator cannot return 0.
func TestBinarySearchMissingEqual(t *testing.T) {
	s := users()
	target := User{Age: 30}

	if _, found := slices.BinarySearchFunc(s, target, compareAge); !found {
		t.Fatalf("reflexive comparator should find age 30")
	}

	i, found := slices.BinarySearchFunc(s, target, compareMissingEqual)
	if found {
		t.Errorf("comparator without an equal branch found index %d", i)
	}
	t.Logf("VERIFIED: BinarySearchFunc reports not found (insertion index %d)", i)
}

// TestCompareFuncMissingEqual verifies that a slice does not compare equal
// to itself under a comparator that cannot return 0.
func TestCompareFuncMissingEqual(t *testing.T) {
	s := users()

	if got := slices.CompareFunc(s, s, compareAge); got != 0 {
		t.Fatalf("reflexive comparator: CompareFunc(s, s) = %d, want 0", got)
	}
	if got := slices.CompareFunc(s, s, compareMissingEqual); got == 0 {
		t.Errorf("CompareFunc(s, s) = 0 with a comparator that never returns 0")
	}
	t.Logf("VERIFIED: CompareFunc(s, s) is non-zero")
}

// TestSliceIsSortedNonStrict verifies that a less function using <= rejects
// a sorted slice with duplicates.
func TestSliceIsSortedNonStrict(t *testing.T) {
	s := users()

	strict := func(i, j int) bool { return s[i].Age < s[j].Age }
	nonStrict := func(i, j int) bool { return s[i].Age <= s[j].Age }

	if !sort.SliceIsSorted(s, strict) {
		t.Fatalf("strict less should accept the sorted slice")
	}
	if sort.SliceIsSorted(s, nonStrict) {
		t.Errorf("less using <= accepted a slice with equal ages as sorted")
	}
	t.Logf("VERIFIED: SliceIsSorted rejects duplicates under <=")
}

// TestSortStableNonStrict documents what a stable sort does with a less
// function that returns true for equal elements.
func TestSortStableNonStrict(t *testing.T) {
	s := users()
	sort.SliceStable(s, func(i, j int) bool { return s[i].Age <= s[j].Age })

	// Document the actual order of the two users with age 30
	for i, u := range s {
		t.Logf("Position %d: %s (%d)", i, u.Name, u.Age)
	}
	if s[1].Name == "carol" {
		t.Logf("OBSERVED: SliceStable reordered equal elements")
	} else {
		t.Logf("OBSERVED: SliceStable kept equal elements in place for this input")
	}
}

// TestMinFuncMissingEqual documents that MinFunc still returns an element.
// The first minimal element is not guaranteed when cmp(x, x) != 0.
func TestMinFuncMissingEqual(t *testing.T) {
	s := []User{{Name: "x", Age: 10}, {Name: "y", Age: 10}}

	if got := slices.MinFunc(s, compareAge); got.Name != "x" {
		t.Fatalf("reflexive comparator: MinFunc = %s, want x", got.Name)
	}
	got := slices.MinFunc(s, compareMissingEqual)
	t.Logf("OBSERVED: MinFunc returned %s", got.Name)
}
