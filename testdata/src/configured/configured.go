// Package configured is analyzed with testdata/configured.yaml.
package configured

type Row struct {
	ID   int
	Name string
}

// SortBy sorts rows with a three-way comparator.
func SortBy(rows []Row, cmp func(a, b Row) int) {}

// externalKey is declared pure in the configuration.
func externalKey(r Row) int {
	println(r.Name)
	return r.ID
}

// compareIDs is declared zero_on_equal in the configuration.
func compareIDs(a, b Row) int {
	if a.ID < b.ID {
		return -1
	}
	return 1
}

func useConfiguredConsumer(rows []Row) {
	SortBy(rows, func(a, b Row) int {
		if a.ID < b.ID {
			return -1
		}
		return 1 // want "comparator does not return 0 when both arguments are equal"
	})
}

func orderRows(a, b Row) int {
	if externalKey(a) == externalKey(b) {
		return 1 // want "comparator does not return 0 when both arguments are equal"
	}
	return compareIDs(a, b)
}

func orderRowsUnused(a, b Row) int {
	return compareIDs(a, a)
}
