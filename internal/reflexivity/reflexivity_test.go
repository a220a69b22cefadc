package reflexivity

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/mpyw/cmpreflex/internal/candidate"
	issa "github.com/mpyw/cmpreflex/internal/ssa"
)

type fixture struct {
	fset       *token.FileSet
	src        string
	file       *ast.File
	candidates map[string]*candidate.Candidate
}

func load(t *testing.T, src string) *fixture {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	pkg := types.NewPackage("example.com/p", "p")
	conf := &types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	ssaPkg, info, err := ssautil.BuildPackage(conf, fset, pkg, []*ast.File{f}, ssa.SanityCheckFunctions)
	require.NoError(t, err)

	var funcs []*ssa.Function
	for _, decl := range f.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok {
			funcs = append(funcs, ssaPkg.Prog.FuncValue(info.Defs[fd.Name].(*types.Func)))
		}
	}

	finder := candidate.NewFinder(info, funcs, candidate.Options{NamePattern: regexp.MustCompile(`^cmp`)})
	fx := &fixture{fset: fset, src: src, file: f, candidates: make(map[string]*candidate.Candidate)}
	for _, c := range finder.Find(inspector.New([]*ast.File{f})) {
		fx.candidates[c.Func.Name()] = c
	}
	return fx
}

func (fx *fixture) get(t *testing.T, name string) *candidate.Candidate {
	t.Helper()

	c, ok := fx.candidates[name]
	require.True(t, ok, "candidate %s not found", name)
	return c
}

func (fx *fixture) text(f *Finding) string {
	start := fx.fset.Position(f.Pos).Offset
	end := fx.fset.Position(f.End).Offset
	return fx.src[start:end]
}

type gaveUp struct{}

func (gaveUp) Evaluate(*ssa.Function, issa.Condition) issa.Result {
	return issa.Result{Status: issa.GaveUp, Reason: "test"}
}

const checkSrc = `package p

import (
	"cmp"
	"sort"
)

type User struct {
	Name string
	Age  int
}

func cmpAge(a, b User) int { return cmp.Compare(a.Age, b.Age) }

func cmpMissingEqual(a, b User) int {
	if a.Age < b.Age {
		return -1
	}
	return 1
}

func cmpTwoReturns(a, b User) int {
	if a.Name == "" {
		return 1
	}
	return 2
}

//cmpreflex:comparator
func cmpMixed(a User, b string) int { return 1 }

func sortUsers(s []User) {
	sort.Slice(s, func(i, j int) bool { return s[i].Age <= s[j].Age })
	sort.Slice(s, func(i, j int) bool { return s[i].Age < s[j].Age })
	sort.Slice(s, func(i, j int) bool { return s[i].Age == s[j].Age || s[i].Name < s[j].Name })
}
`

func TestCheck(t *testing.T) {
	fx := load(t, checkSrc)
	ev := issa.NewInterpreter(issa.Options{})

	tests := []struct {
		fn      string
		want    string // reported message; "" for no finding
		anchor  string // source text at the finding
		wantFix bool
	}{
		{fn: "cmpAge"},
		{fn: "cmpMissingEqual", want: msgThreeWay, anchor: "1"},
		{fn: "cmpTwoReturns", want: msgThreeWay, anchor: "cmpTwoReturns"},
		{fn: "cmpMixed"},
		{fn: "sortUsers$1", want: msgLess, anchor: "s[i].Age <= s[j].Age", wantFix: true},
		{fn: "sortUsers$2"},
		{fn: "sortUsers$3", want: msgLess, anchor: "s[i].Age == s[j].Age || s[i].Name < s[j].Name"},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			got := Check(fx.get(t, tt.fn), ev, fx.file)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Message)
			assert.Equal(t, tt.anchor, fx.text(got))
			assert.Equal(t, tt.wantFix, len(got.Fixes) > 0)
		})
	}
}

func TestCheck_StrictFix(t *testing.T) {
	fx := load(t, checkSrc)

	got := Check(fx.get(t, "sortUsers$1"), issa.NewInterpreter(issa.Options{}), fx.file)
	require.NotNil(t, got)
	require.Len(t, got.Fixes, 1)
	require.Len(t, got.Fixes[0].TextEdits, 1)

	edit := got.Fixes[0].TextEdits[0]
	assert.Equal(t, "<", string(edit.NewText))
	start := fx.fset.Position(edit.Pos).Offset
	end := fx.fset.Position(edit.End).Offset
	assert.Equal(t, "<=", checkSrc[start:end])
}

func TestCheck_GaveUp(t *testing.T) {
	fx := load(t, checkSrc)
	assert.Nil(t, Check(fx.get(t, "cmpMissingEqual"), gaveUp{}, fx.file))
}

func TestAnchor(t *testing.T) {
	fx := load(t, checkSrc)
	c := fx.get(t, "sortUsers$3")

	ret := c.Body().List[0].(*ast.ReturnStmt)
	or := ret.Results[0].(*ast.BinaryExpr)

	assert.Nil(t, Anchor(c, fx.file, nil))
	assert.Equal(t, ast.Expr(or.X), Anchor(c, fx.file, []ast.Expr{or.X}))
	assert.Equal(t, ast.Expr(or), Anchor(c, fx.file, []ast.Expr{or.X, or.Y}))
	assert.Nil(t, Anchor(c, nil, []ast.Expr{or.X, or.Y}))
}
