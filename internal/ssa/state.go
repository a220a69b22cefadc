package ssa

import (
	"maps"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/cmpreflex/internal/rangeset"
)

// state is the abstract machine state of one explored path.
//
// Memory is split in two regions. Stack memory belongs to non-escaping
// allocations of the function and only changes through its own stores.
// Shared memory is everything else and may change at any unknown call.
// Each region has an epoch; a load is keyed by the epoch of its region, so
// two loads of one address in the same epoch yield the same term.
type state struct {
	block  *ssa.BasicBlock
	pred   int // index of the predecessor edge used to enter block, or -1
	env    map[ssa.Value]termID
	ranges map[termID]rangeset.Set // path-specific range refinements
	visits map[*ssa.BasicBlock]int
	stores map[termID]termID // address → last stored value, for load forwarding
	epoch  int               // shared memory epoch
	local  int               // stack memory epoch
}

func newState(entry *ssa.BasicBlock) *state {
	return &state{
		block:  entry,
		pred:   -1,
		env:    make(map[ssa.Value]termID),
		ranges: make(map[termID]rangeset.Set),
		visits: make(map[*ssa.BasicBlock]int),
		stores: make(map[termID]termID),
	}
}

// fork returns a copy of s that continues at succ.
func (s *state) fork(succ *ssa.BasicBlock) *state {
	return &state{
		block:  succ,
		pred:   predIndex(succ, s.block),
		env:    maps.Clone(s.env),
		ranges: maps.Clone(s.ranges),
		visits: maps.Clone(s.visits),
		stores: maps.Clone(s.stores),
		epoch:  s.epoch,
		local:  s.local,
	}
}

// jump moves s to succ without copying.
func (s *state) jump(succ *ssa.BasicBlock) *state {
	s.pred = predIndex(succ, s.block)
	s.block = succ
	return s
}

func predIndex(succ, pred *ssa.BasicBlock) int {
	for i, p := range succ.Preds {
		if p == pred {
			return i
		}
	}
	return -1
}
