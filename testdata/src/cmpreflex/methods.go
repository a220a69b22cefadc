package cmpreflex

import (
	"slices"
	"sort"
	"strings"
)

// =============================================================================
// sort.Interface implementations
// =============================================================================

type byName []User

func (s byName) Len() int      { return len(s) }
func (s byName) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byName) Less(i, j int) bool {
	return s[i].Name <= s[j].Name // want "less function returns true when both arguments are equal"
}

type byAge []User

func (s byAge) Len() int           { return len(s) }
func (s byAge) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s byAge) Less(i, j int) bool { return s[i].Age < s[j].Age }

func sortInterfaces(users []User) {
	sort.Sort(byName(users))
	sort.Stable(byAge(users))
}

// =============================================================================
// Compare methods
// =============================================================================

type Version struct {
	Major, Minor int
}

func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return v.Major - o.Major
	}
	return v.Minor - o.Minor
}

type Tag struct{ Name string }

func (t *Tag) Cmp(o *Tag) int {
	if strings.ToLower(t.Name) < strings.ToLower(o.Name) {
		return -1
	}
	return 1 // want "comparator does not return 0 when both arguments are equal"
}

// =============================================================================
// Method values and expressions
// =============================================================================

type sorter struct{ desc bool }

func (s sorter) byAge(a, b User) int {
	if s.desc {
		return b.Age - a.Age
	}
	return a.Age - b.Age
}

func (s sorter) byNameBroken(a, b User) int {
	if a.Name == b.Name {
		return 1 // want "comparator does not return 0 when both arguments are equal"
	}
	return strings.Compare(a.Name, b.Name)
}

func sortWithMethods(users []User, versions []Version, s sorter) {
	slices.SortFunc(users, s.byAge)
	slices.SortFunc(users, s.byNameBroken)
	slices.SortFunc(versions, Version.Compare)
}
