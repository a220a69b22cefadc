package directive

import (
	"go/ast"
	"go/token"
	"slices"
)

// ignoreEntry is one //cmpreflex:ignore comment of a file.
type ignoreEntry struct {
	pos  token.Pos
	used bool // a finding was suppressed by it
}

// fileLevel is the IgnoreMap key of an ignore in the package doc comment.
const fileLevel = -1

// IgnoreMap holds the //cmpreflex:ignore comments of one file, keyed by
// the line the comment sits on.
type IgnoreMap map[int]*ignoreEntry

// BuildIgnoreMap collects the ignore comments of file.
//
// A comment suppresses findings reported on its own line or on the line
// below it, which covers both placements:
//
//	return 1 //cmpreflex:ignore
//
//	//cmpreflex:ignore
//	return 1
//
// An ignore in the package doc comment is stored under fileLevel and
// suppresses every finding of the file. It is never reported as unused.
func BuildIgnoreMap(fset *token.FileSet, file *ast.File) IgnoreMap {
	m := make(IgnoreMap)
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if IsIgnoreDirective(c.Text) {
				m[fset.Position(c.Pos()).Line] = &ignoreEntry{pos: c.Pos()}
			}
		}
	}

	if file.Doc == nil {
		return m
	}
	for _, c := range file.Doc.List {
		if IsIgnoreDirective(c.Text) {
			delete(m, fset.Position(c.Pos()).Line)
			m[fileLevel] = &ignoreEntry{pos: c.Pos(), used: true}
		}
	}
	return m
}

// ShouldIgnore reports whether a finding on line is suppressed, and marks
// the suppressing comment as used.
func (m IgnoreMap) ShouldIgnore(line int) bool {
	for _, l := range [3]int{fileLevel, line, line - 1} {
		if entry, ok := m[l]; ok {
			entry.used = true
			return true
		}
	}
	return false
}

// GetUnusedIgnores returns the line-level comments that suppressed
// nothing, in source order.
func (m IgnoreMap) GetUnusedIgnores() []token.Pos {
	var unused []token.Pos
	for line, entry := range m {
		if line != fileLevel && !entry.used {
			unused = append(unused, entry.pos)
		}
	}
	slices.Sort(unused)
	return unused
}

// MarkUsed marks the comment on line as used. Function-level ignores call
// it because they suppress findings far below the comment.
func (m IgnoreMap) MarkUsed(line int) {
	if entry, ok := m[line]; ok {
		entry.used = true
	}
}

// FunctionIgnoreEntry is an ignore comment in a function's doc comment.
type FunctionIgnoreEntry struct {
	DirectiveLine int // key of the comment in the file's IgnoreMap
}

// BuildFunctionIgnoreSet returns the functions of file whose doc comment
// holds an ignore, keyed by the position of the function name. That is
// the position ssa.Function.Pos reports for declared functions, so the
// checker skips every candidate of the function, its literals included.
func BuildFunctionIgnoreSet(fset *token.FileSet, file *ast.File) map[token.Pos]FunctionIgnoreEntry {
	set := make(map[token.Pos]FunctionIgnoreEntry)
	for _, fd := range MarkedFuncs(file, IsIgnoreDirective) {
		i := slices.IndexFunc(fd.Doc.List, func(c *ast.Comment) bool { return IsIgnoreDirective(c.Text) })
		set[fd.Name.Pos()] = FunctionIgnoreEntry{DirectiveLine: fset.Position(fd.Doc.List[i].Pos()).Line}
	}
	return set
}
