package directive

import (
	"go/token"
	"go/types"
)

// Add exports the ability to add an entry to IgnoreMap for external tests.
// For file-level ignores (line = -1), the entry is marked as used by default
// to match the behavior of BuildIgnoreMap.
func (m IgnoreMap) Add(line int, pos token.Pos) {
	m[line] = &ignoreEntry{pos: pos, used: line == fileLevel}
}

// Known exports the ability to check the pre-built entries of a FuncSet.
func (s *FuncSet) Known(fn *types.Func) bool {
	return s.known[fn]
}
