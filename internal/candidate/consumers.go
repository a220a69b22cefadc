package candidate

import (
	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// Consumer is a function that takes an ordering function as an argument.
type Consumer struct {
	Func string // typeutil.FuncName of the consumer, e.g. "slices.SortFunc"
	Arg  int    // index of the ordering function argument
	Kind typeutil.Ordering
}

// DefaultConsumers returns the standard library consumers.
func DefaultConsumers() []Consumer {
	return []Consumer{
		{Func: "slices.SortFunc", Arg: 1, Kind: typeutil.ThreeWay},
		{Func: "slices.SortStableFunc", Arg: 1, Kind: typeutil.ThreeWay},
		{Func: "slices.IsSortedFunc", Arg: 1, Kind: typeutil.ThreeWay},
		{Func: "slices.MinFunc", Arg: 1, Kind: typeutil.ThreeWay},
		{Func: "slices.MaxFunc", Arg: 1, Kind: typeutil.ThreeWay},
		{Func: "slices.BinarySearchFunc", Arg: 2, Kind: typeutil.ThreeWay},
		{Func: "slices.CompareFunc", Arg: 2, Kind: typeutil.ThreeWay},
		{Func: "sort.Slice", Arg: 1, Kind: typeutil.Less},
		{Func: "sort.SliceStable", Arg: 1, Kind: typeutil.Less},
		{Func: "sort.SliceIsSorted", Arg: 1, Kind: typeutil.Less},
	}
}

// consumerTable indexes consumers by name. Later entries win.
func consumerTable(extra []Consumer) map[string]Consumer {
	table := make(map[string]Consumer)
	for _, c := range DefaultConsumers() {
		table[c.Func] = c
	}
	for _, c := range extra {
		table[c.Func] = c
	}
	return table
}
