package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skc/internal/arena"
	"skc/internal/ast"
	"skc/internal/bracket"
	"skc/internal/diag"
	"skc/internal/lexer"
	"skc/internal/parser"
	"skc/internal/sema"
	"skc/internal/sk"
	"skc/internal/source"
)

type pipeline struct {
	fs     *source.FileSet
	arena  *arena.Arena
	tree   *ast.Tree
	prog   ast.ProgramID
	bag    *diag.Bag
	forest *sk.Forest
}

// run parses src and, when stage allows it, checks, curries and converts.
func run(t *testing.T, src string, stage string) pipeline {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("prog.ld", []byte(src)))
	a, err := arena.NewAligned(1<<16, ast.NodeBlockSize, 5)
	require.NoError(t, err)
	tree := ast.NewTree(a, file.ID)
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(file, lexer.New(file, lexer.Options{Reporter: rep}), tree, parser.Options{Reporter: rep})
	p := pipeline{fs: fs, arena: a, tree: tree, prog: res.Program, bag: bag}
	if stage == "parse" {
		return p
	}
	checked, err := sema.Check(tree, res.Program, sema.Options{Reporter: rep})
	require.NoError(t, err)
	if stage == "check" {
		return p
	}
	require.NoError(t, sema.Curry(tree, res.Program))
	p.forest, err = bracket.Convert(sk.NewStore(tree), res.Program, checked.Table, bracket.Options{Reporter: rep})
	require.NoError(t, err)
	return p
}

func (p pipeline) pretty(opts PrettyOpts) string {
	var buf bytes.Buffer
	Pretty(&buf, p.bag, p.fs, opts)
	return buf.String()
}

func TestPrettyUndeclared(t *testing.T) {
	p := run(t, "let a = x;\n", "check")
	want := "[CHECKER]: non declared identifier used x in file prog.ld at 1\n" +
		"let a = x;\n" +
		"        ^\n"
	assert.Equal(t, want, p.pretty(PrettyOpts{}))
}

func TestPrettyWideRunes(t *testing.T) {
	p := run(t, "ok = λx.x;\nf = λ名.yy;\n", "check")
	want := "[CHECKER]: non declared identifier used yy in file prog.ld at 2\n" +
		"f = λ名.yy;\n" +
		"        ^~\n"
	assert.Equal(t, want, p.pretty(PrettyOpts{}))
}

func TestPrettyTabsKept(t *testing.T) {
	p := run(t, "\ta = zz;\n", "check")
	out := p.pretty(PrettyOpts{})
	assert.True(t, strings.HasSuffix(out, "\ta = zz;\n\t    ^~\n"), out)
}

func TestPrettyWarningAndSeverityTag(t *testing.T) {
	p := run(t, "a = λx.x;\na = λy.y;\n", "check")
	out := p.pretty(PrettyOpts{})
	assert.Equal(t, "[CHECKER] warning: reassigning expression to const variable a in file prog.ld at 2\n"+
		"a = λy.y;\n"+
		"^\n", out)
}

func TestPrettyZeroWidthSpan(t *testing.T) {
	p := run(t, "a = b", "parse")
	out := p.pretty(PrettyOpts{})
	require.True(t, strings.HasPrefix(out, "[PARSER]: expected ';' after expression, found end of file in file prog.ld at 1\n"), out)
	assert.True(t, strings.HasSuffix(out, "a = b\n     ^\n"), out)
}

func TestPrettyColorAndNotes(t *testing.T) {
	p := run(t, "a = (b c;\n", "parse")
	out := p.pretty(PrettyOpts{Color: true, ShowNotes: true})
	assert.Contains(t, out, "\x1b[31m^")
	assert.Contains(t, out, "  note: parenthesis opened here in file prog.ld at 1\n")

	plain := p.pretty(PrettyOpts{})
	assert.NotContains(t, plain, "\x1b[")
	assert.NotContains(t, plain, "note:")
}

func TestPrettyBasenameAndDropped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("dir/sub/prog.ld", []byte("a = q;\n"))
	bag := diag.NewBag(1)
	sp := source.Span{File: id, Start: 4, End: 5}
	bag.Add(diag.New(diag.SevError, diag.CheckUndeclared, sp, "non declared identifier used"))
	bag.Add(diag.New(diag.SevError, diag.CheckUndeclared, sp, "non declared identifier used"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	assert.Equal(t, "[CHECKER]: non declared identifier used in file prog.ld at 1\n"+
		"a = q;\n"+
		"    ^\n"+
		"... 1 more diagnostics not shown\n", buf.String())
}

func TestFormatAST(t *testing.T) {
	p := run(t, "twice = λf,x.f (f x);\nid = a;\n", "parse")
	var buf bytes.Buffer
	FormatAST(&buf, p.tree, p.prog, TreeOpts{})
	want := `twice
└── λf,x
    └── @
        ├── f
        └── @
            ├── f
            └── x
id
└── a
`
	assert.Equal(t, want, buf.String())
}

func TestFormatForest(t *testing.T) {
	p := run(t, "id = λx.x;\nk = λx,y.x;\napp = λf.id f;\n", "convert")

	var buf bytes.Buffer
	FormatForest(&buf, p.forest, TreeOpts{})
	assert.Equal(t, "id = S K K\nk = K\napp = id\n", buf.String())

	buf.Reset()
	FormatForestTree(&buf, p.forest, TreeOpts{})
	want := `id
└── @
    ├── @
    │   ├── S
    │   └── K
    └── K
k
└── K
app
└── →id
`
	assert.Equal(t, want, buf.String())
}

func TestArenaPanel(t *testing.T) {
	p := run(t, "id = λx.x;", "convert")
	out := ArenaPanel("arena", p.arena.Stats())
	assert.Contains(t, out, "aligned")
	assert.Contains(t, out, "64 B")
	assert.Contains(t, out, "1 / 5")
	assert.Contains(t, out, "arena")
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.ld", []byte("a = b;")))
	toks := lexer.New(file, lexer.Options{}).All()

	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, toks, fs))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `  1: Ident      "a" at 1:1-1:2`, lines[0])
	assert.Equal(t, `  2: Assign     "=" at 1:3-1:4 (leading: Space)`, lines[1])

	buf.Reset()
	require.NoError(t, FormatTokensJSON(&buf, toks, fs))
	assert.Contains(t, buf.String(), `"kind": "Semicolon"`)
	assert.Contains(t, buf.String(), `"end_col": 7`)
}
