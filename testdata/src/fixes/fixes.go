package fixes

import "sort"

type Event struct {
	At   int64
	Name string
}

func byTime(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].At <= events[j].At // want "less function returns true when both arguments are equal"
	})
}

func byTimeDesc(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return (events[i].At >= events[j].At) // want "less function returns true when both arguments are equal"
	})
}

type byName []Event

func (s byName) Len() int      { return len(s) }
func (s byName) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byName) Less(i, j int) bool {
	return s[i].Name <= s[j].Name // want "less function returns true when both arguments are equal"
}

func alreadyStrict(events []Event) {
	sort.Slice(events, func(i, j int) bool { return events[i].At < events[j].At })
}
