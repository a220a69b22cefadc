package directive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
)

// MarkedFuncs returns the function declarations of file whose doc comment
// carries a directive matched by is.
func MarkedFuncs(file *ast.File, is func(string) bool) []*ast.FuncDecl {
	var out []*ast.FuncDecl
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if is(c.Text) {
				out = append(out, fd)
				break
			}
		}
	}
	return out
}

// FuncSet is a set of functions marked with one directive.
//
// Declarations of the package under analysis are added with AddFile.
// Functions of other packages are looked up lazily by parsing the file
// that declares them, with caching:
//
//	// package model (dependency)
//	//cmpreflex:pure
//	func (u User) Key() string { ... }
//
//	// package under analysis
//	strings.Compare(a.Key(), b.Key())  → Contains((model.User).Key) = true
type FuncSet struct {
	is    func(string) bool
	known map[*types.Func]bool
	fset  *token.FileSet
	cache map[string]*ast.File // cached parsed files; nil entries failed to parse
}

// NewFuncSet creates a FuncSet for the directive matched by is.
func NewFuncSet(fset *token.FileSet, is func(string) bool) *FuncSet {
	return &FuncSet{
		is:    is,
		known: make(map[*types.Func]bool),
		fset:  fset,
		cache: make(map[string]*ast.File),
	}
}

// NewPureFuncSet creates a FuncSet for //cmpreflex:pure.
func NewPureFuncSet(fset *token.FileSet) *FuncSet {
	return NewFuncSet(fset, IsPureDirective)
}

// AddFile adds the marked declarations of file, resolved through info.
// It returns the declarations that were added.
func (s *FuncSet) AddFile(file *ast.File, info *types.Info) []*ast.FuncDecl {
	decls := MarkedFuncs(file, s.is)
	for _, fd := range decls {
		if fn, ok := info.Defs[fd.Name].(*types.Func); ok {
			s.known[fn] = true
		}
	}
	return decls
}

// Contains reports whether fn (or its generic origin) is marked.
func (s *FuncSet) Contains(fn *types.Func) bool {
	if s == nil || fn == nil {
		return false
	}
	fn = fn.Origin()
	if marked, ok := s.known[fn]; ok {
		return marked
	}
	marked := s.lookupSource(fn)
	s.known[fn] = marked
	return marked
}

// lookupSource finds the declaration of fn in its source file, matching
// the name and its line. Export data may not keep columns.
func (s *FuncSet) lookupSource(fn *types.Func) bool {
	if s.fset == nil || !fn.Pos().IsValid() {
		return false
	}
	want := s.fset.Position(fn.Pos())
	if want.Filename == "" {
		return false
	}

	file := s.parseFile(want.Filename)
	if file == nil {
		return false
	}
	for _, fd := range MarkedFuncs(file, s.is) {
		if fd.Name.Name == fn.Name() && s.fset.Position(fd.Name.Pos()).Line == want.Line {
			return true
		}
	}
	return false
}

// parseFile parses a Go source file with caching.
func (s *FuncSet) parseFile(filename string) *ast.File {
	if file, ok := s.cache[filename]; ok {
		return file
	}
	file, err := parser.ParseFile(s.fset, filename, nil, parser.ParseComments)
	if err != nil {
		file = nil
	}
	s.cache[filename] = file
	return file
}
