// Package ssa provides the symbolic interpreter behind the reflexivity check.
//
// The package contains:
//   - Interpreter: path-sensitive evaluation of an SSA function under the
//     assumption that two of its parameters are equal
//   - terms: hash-consed symbolic values; equal terms are equal at runtime
//   - Contracts: what the interpreter knows about callees (pure, returns 0
//     for equal arguments, never returns, ...)
//   - CFGAnalyzer: reachability queries used to detect never-returning code
//
// Architecture follows mechanism vs policy separation:
//   - Interpreter: HOW to explore paths and fold values (mechanism)
//   - Contracts and purity: WHAT a call is allowed to mean (policy)
package ssa
