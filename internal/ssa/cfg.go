package ssa

import (
	"golang.org/x/tools/go/ssa"
)

// =============================================================================
// CFGAnalyzer
//
// CFGAnalyzer provides control flow graph queries for SSA functions.
//
// This component is stateless and can be reused across multiple analyses.
// =============================================================================

// CFGAnalyzer analyzes control flow graphs of SSA functions.
type CFGAnalyzer struct{}

// NewCFGAnalyzer creates a new CFGAnalyzer.
func NewCFGAnalyzer() *CFGAnalyzer {
	return &CFGAnalyzer{}
}

// ReachableBlocks returns the blocks reachable from the entry block using
// BFS. The recover block is treated as reachable: a deferred recover()
// may resume execution there.
//
// Example CFG:
//
//	        ┌─────┐
//	        │  0  │ entry
//	        └──┬──┘
//	     ┌─────┴─────┐
//	  ┌──┴──┐     ┌──┴──┐
//	  │  1  │     │  2  │ panic
//	  └──┬──┘     └─────┘
//	  ┌──┴──┐
//	  │  3  │ return
//	  └─────┘
//
//	ReachableBlocks = {0, 1, 2, 3}
func (c *CFGAnalyzer) ReachableBlocks(fn *ssa.Function) map[*ssa.BasicBlock]bool {
	visited := make(map[*ssa.BasicBlock]bool)
	if fn == nil || len(fn.Blocks) == 0 {
		return visited
	}

	queue := []*ssa.BasicBlock{fn.Blocks[0]}
	if fn.Recover != nil {
		queue = append(queue, fn.Recover)
	}
	for _, b := range queue {
		visited[b] = true
	}

	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		for _, succ := range block.Succs {
			if !visited[succ] {
				visited[succ] = true
				queue = append(queue, succ)
			}
		}
	}
	return visited
}

// NeverReturns reports whether fn has a body and no reachable return.
// Every path through such a function panics, exits or loops forever.
//
// Functions without a body (external or assembly) are not known to
// panic, so NeverReturns is false for them.
func (c *CFGAnalyzer) NeverReturns(fn *ssa.Function) bool {
	if fn == nil || len(fn.Blocks) == 0 {
		return false
	}
	for block := range c.ReachableBlocks(fn) {
		if len(block.Instrs) == 0 {
			continue
		}
		if _, ok := block.Instrs[len(block.Instrs)-1].(*ssa.Return); ok {
			return false
		}
	}
	return true
}
