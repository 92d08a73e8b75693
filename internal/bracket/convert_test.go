package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skc/internal/arena"
	"skc/internal/ast"
	"skc/internal/diag"
	"skc/internal/lexer"
	"skc/internal/parser"
	"skc/internal/sema"
	"skc/internal/sk"
	"skc/internal/source"
)

type compiled struct {
	store  *sk.Store
	forest *sk.Forest
	bag    *diag.Bag
	err    error
}

func compile(t *testing.T, src string, curry bool) compiled {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("prog.ld", []byte(src)))
	a, err := arena.NewAligned(1<<16, ast.NodeBlockSize, 4)
	require.NoError(t, err)
	tree := ast.NewTree(a, file.ID)
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}

	res := parser.ParseFile(file, lexer.New(file, lexer.Options{Reporter: rep}), tree, parser.Options{Reporter: rep})
	require.False(t, res.Failed(), "parse: %v", bag.Items())
	checked, err := sema.Check(tree, res.Program, sema.Options{Reporter: rep})
	require.NoError(t, err)
	if curry {
		require.NoError(t, sema.Curry(tree, res.Program))
	}

	store := sk.NewStore(tree)
	forest, err := Convert(store, res.Program, checked.Table, Options{Reporter: rep})
	return compiled{store: store, forest: forest, bag: bag, err: err}
}

func (c compiled) root(t *testing.T, name string) sk.Root {
	t.Helper()
	for _, r := range c.forest.All() {
		if c.store.Tree().Name(r.Ident) == name {
			return r
		}
	}
	t.Fatalf("no root named %s", name)
	return sk.Root{}
}

func (c compiled) format(t *testing.T, name string) string {
	return c.store.Format(c.root(t, name).Node)
}

// run applies the compiled statement to args and returns the normal form.
func (c compiled) run(t *testing.T, name string, args ...*term) string {
	t.Helper()
	nf, ok := normalize(apply(expand(c.store, c.root(t, name).Node), args...), 1000)
	require.True(t, ok, "no normal form for %s", name)
	return nf.String()
}

func TestConvertShapes(t *testing.T) {
	c := compile(t, `
id    = λx.x;
const = λx,y.x;
twice = λf.λx.f (f x);
`, true)
	require.NoError(t, c.err)
	assert.Zero(t, c.bag.Len())

	assert.Equal(t, "S K K", c.format(t, "id"))
	assert.Equal(t, "K", c.format(t, "const"))
	assert.Equal(t, "S (S (K S) K) (S K K)", c.format(t, "twice"))
}

func TestConvertSemantics(t *testing.T) {
	c := compile(t, `
id      = λx.x;
const   = λx,y.x;
twice   = λf.λx.f (f x);
flip    = λf,x,y.f y x;
compose = λf,g,x.f (g x);
subst   = λx,y,z.x z (y z);
self    = λx.x x;
konst   = λx.λy.λz.y;
`, true)
	require.NoError(t, c.err)

	a, b, f, g := v("a"), v("b"), v("f"), v("g")
	assert.Equal(t, "a", c.run(t, "id", a))
	assert.Equal(t, "a", c.run(t, "const", a, b))
	assert.Equal(t, "f (f a)", c.run(t, "twice", f, a))
	assert.Equal(t, "f b a", c.run(t, "flip", f, a, b))
	assert.Equal(t, "f (g a)", c.run(t, "compose", f, g, a))
	assert.Equal(t, "f a (g a)", c.run(t, "subst", f, g, a))
	assert.Equal(t, "a a", c.run(t, "self", a))
	assert.Equal(t, "b", c.run(t, "konst", a, b, v("c")))
}

func TestConvertClosedTerms(t *testing.T) {
	c := compile(t, "twice = λf.λx.f (f x);\nk = λx,y.x;\n", true)
	require.NoError(t, c.err)
	for _, r := range c.forest.All() {
		name := c.store.Tree().Name(r.Ident)
		assert.False(t, c.store.ContainsFree(r.Node, "f"), name)
		assert.False(t, c.store.ContainsFree(r.Node, "x"), name)
		assert.False(t, c.store.ContainsFree(r.Node, "y"), name)
	}
}

func TestConvertReferenceSharing(t *testing.T) {
	c := compile(t, `
id  = λx.x;
app = λf.id f;
two = λx.id (id x);
`, true)
	require.NoError(t, c.err)

	id := c.root(t, "id")
	app := c.root(t, "app")

	// eta drops the abstraction over f, leaving the bare reference
	ref, ok := c.store.Node(app.Node).(sk.Ref)
	require.True(t, ok)
	assert.Equal(t, id.Node, ref.Target)
	assert.Equal(t, id.Stmt, ref.Stmt)
	assert.Equal(t, "id", c.format(t, "app"))

	// the compiled slot holds the root
	tree := c.store.Tree()
	assert.Equal(t, arena.Ptr(id.Node), tree.Compiled(id.Stmt))

	assert.Equal(t, "a", c.run(t, "two", v("a")))
	assert.Equal(t, "a", c.run(t, "app", v("a")))
}

func TestConvertRebindingResolvesToEarlierDefinition(t *testing.T) {
	c := compile(t, "a = λx.x;\nb = a;\na = λx,y.x;\n", true)
	require.NoError(t, c.err)
	assert.Zero(t, c.bag.Count(diag.ConvUsedBeforeDefined))

	first := c.forest.Root(0)
	ref, ok := c.store.Node(c.forest.Root(1).Node).(sk.Ref)
	require.True(t, ok)
	assert.Equal(t, first.Stmt, ref.Stmt)
	assert.Equal(t, first.Node, ref.Target)
}

func TestConvertUsedBeforeDefined(t *testing.T) {
	// the checker accepts a self reference, the converter cannot resolve it
	c := compile(t, "loop = λx.loop x;\nok = λx.x;\n", true)
	require.NoError(t, c.err)

	require.Equal(t, 1, c.bag.Count(diag.ConvUsedBeforeDefined))
	var d diag.Diagnostic
	for _, it := range c.bag.Items() {
		if it.Code == diag.ConvUsedBeforeDefined {
			d = it
		}
	}
	assert.Equal(t, "loop", d.Subject)
	assert.Equal(t, "[SK CONVERTER]", d.Code.Tag())

	// conversion went on with a placeholder
	assert.Equal(t, "loop", c.format(t, "loop"))
	assert.Equal(t, "S K K", c.format(t, "ok"))
	assert.Equal(t, 2, c.forest.Len())
}

func TestConvertUnreachable(t *testing.T) {
	// skipping curry leaves a two parameter abstraction behind
	c := compile(t, "k = λx,y.x;", false)
	require.ErrorIs(t, c.err, ErrUnreachable)
	assert.Nil(t, c.forest)
	assert.True(t, c.bag.HasFatal())
	assert.Equal(t, 1, c.bag.Count(diag.ConvUnreachable))
}

func TestConvertEmptyProgram(t *testing.T) {
	c := compile(t, "# nothing here\n", true)
	require.NoError(t, c.err)
	assert.Equal(t, 0, c.forest.Len())
}

func TestConvertArenaExhaustion(t *testing.T) {
	fs := source.NewFileSet()
	src := "t = λf.λx.f (f (f (f (f (f (f (f x)))))));"
	file := fs.Get(fs.AddVirtual("big.ld", []byte(src)))
	// room for the parsed tree only
	a, err := arena.NewAligned(1<<12, ast.NodeBlockSize, 1)
	require.NoError(t, err)
	tree := ast.NewTree(a, file.ID)
	res := parser.ParseFile(file, lexer.New(file, lexer.Options{}), tree, parser.Options{})
	require.False(t, res.Failed())
	checked, err := sema.Check(tree, res.Program, sema.Options{})
	require.NoError(t, err)
	require.NoError(t, sema.Curry(tree, res.Program))

	_, err = Convert(sk.NewStore(tree), res.Program, checked.Table, Options{})
	require.ErrorIs(t, err, arena.ErrExhausted)
}
