package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skc/internal/arena"
	"skc/internal/source"
)

func newTestTree(t *testing.T) *Tree {
	t.Helper()
	a, err := arena.NewAligned(1<<14, NodeBlockSize, 4)
	require.NoError(t, err)
	return NewTree(a, 7)
}

// ident makes a single identifier whose token sits at [start, start+len).
func ident(tr *Tree, name string, start uint32) IdentID {
	end := start + uint32(len(name))
	tok := tr.NewToken(name, 1, start+1, end+1, source.Span{Start: start, End: end})
	return tr.NewIdent(tok, NoIdentID)
}

func TestTokenRoundTrip(t *testing.T) {
	tr := newTestTree(t)
	id := tr.NewToken("λ'x", 3, 5, 9, source.Span{Start: 20, End: 24})
	require.True(t, id.IsValid())

	tok := tr.Token(id)
	assert.Equal(t, Token{
		Lexeme: "λ'x",
		Row:    3,
		Col:    5,
		ECol:   9,
		Span:   source.Span{File: 7, Start: 20, End: 24},
	}, tok)
	assert.Equal(t, "λ'x", tr.Lexeme(id))
}

func TestIdentChainSpanAndDetach(t *testing.T) {
	tr := newTestTree(t)
	// "x,y,z" with x at 0, y at 2, z at 4
	tz := tr.NewToken("z", 1, 5, 6, source.Span{Start: 4, End: 5})
	ty := tr.NewToken("y", 1, 3, 4, source.Span{Start: 2, End: 3})
	tx := tr.NewToken("x", 1, 1, 2, source.Span{Start: 0, End: 1})
	z := tr.NewIdent(tz, NoIdentID)
	y := tr.NewIdent(ty, z)
	x := tr.NewIdent(tx, y)

	assert.Equal(t, source.Span{File: 7, Start: 0, End: 5}, tr.Ident(x).Span)
	assert.Equal(t, 3, tr.ChainLen(x))

	var names []string
	for id := range tr.Chain(x) {
		names = append(names, tr.Name(id))
	}
	assert.Equal(t, []string{"x", "y", "z"}, names)

	assert.Equal(t, y, tr.Detach(x))
	assert.Equal(t, 1, tr.ChainLen(x))
	assert.Equal(t, source.Span{File: 7, Start: 0, End: 1}, tr.Ident(x).Span)
	assert.Equal(t, NoIdentID, tr.Detach(x))
}

func TestExprDecode(t *testing.T) {
	tr := newTestTree(t)
	f := tr.NewIdentRef(ident(tr, "f", 4))
	x := tr.NewIdentRef(ident(tr, "x", 6))
	app := tr.NewApplication(f, x)
	abs := tr.NewAbstraction(source.Span{File: 7, Start: 0, End: 7}, ident(tr, "x", 1), app)

	got, ok := tr.Expr(app).(Application)
	require.True(t, ok)
	assert.Equal(t, f, got.Left)
	assert.Equal(t, x, got.Right)
	assert.Equal(t, source.Span{File: 7, Start: 4, End: 7}, got.Span)

	lam, ok := tr.Expr(abs).(Abstraction)
	require.True(t, ok)
	assert.Equal(t, "x", tr.Name(lam.Params))
	assert.Equal(t, app, lam.Body)
	assert.Equal(t, ExprAbstraction, tr.ExprKindOf(abs))

	ref, ok := tr.Expr(f).(IdentRef)
	require.True(t, ok)
	assert.Equal(t, "f", tr.Name(ref.Var))

	var kinds []ExprKind
	tr.Inspect(abs, func(id ExprID, _ Expr) bool {
		kinds = append(kinds, tr.ExprKindOf(id))
		return true
	})
	assert.Equal(t, []ExprKind{ExprAbstraction, ExprApplication, ExprIdent, ExprIdent}, kinds)
}

func TestSetAbstraction(t *testing.T) {
	tr := newTestTree(t)
	body := tr.NewIdentRef(ident(tr, "y", 9))
	abs := tr.NewAbstraction(source.Span{Start: 0, End: 10}, ident(tr, "x", 1), body)
	inner := tr.NewAbstraction(source.Span{Start: 3, End: 4}, ident(tr, "y", 3), body)

	tr.SetAbstraction(abs, tr.Expr(abs).(Abstraction).Params, inner)
	assert.Equal(t, inner, tr.Expr(abs).(Abstraction).Body)

	assert.Panics(t, func() { tr.SetAbstraction(body, NoIdentID, inner) })
}

func TestProgramChainAndCompiledSlot(t *testing.T) {
	tr := newTestTree(t)
	var stmts []StmtID
	for i, name := range []string{"a", "b", "c"} {
		v := ident(tr, name, uint32(i*10))
		e := tr.NewIdentRef(ident(tr, "x", uint32(i*10+4)))
		stmts = append(stmts, tr.NewStmt(v, e, source.Span{Start: uint32(i * 10), End: uint32(i*10 + 6)}))
	}
	prog := tr.NewProgram("prog.ld", stmts)
	require.NoError(t, tr.Err())

	assert.Equal(t, "prog.ld", tr.Program(prog).Filename)
	assert.Equal(t, 3, tr.Count(prog))
	var names []string
	for i, s := range tr.Stmts(prog) {
		assert.Equal(t, stmts[i], s)
		names = append(names, tr.StmtName(s))
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	assert.True(t, tr.Compiled(stmts[0]).IsNil())
	root := arena.Ptr(tr.Stmt(stmts[1]).Expr)
	tr.SetCompiled(stmts[0], root)
	assert.Equal(t, root, tr.Compiled(stmts[0]))
	assert.Panics(t, func() { tr.SetCompiled(stmts[0], root) })
}

func TestMissingChildrenPanic(t *testing.T) {
	tr := newTestTree(t)
	x := tr.NewIdentRef(ident(tr, "x", 0))
	assert.Panics(t, func() { tr.NewApplication(x, NoExprID) })
	assert.Panics(t, func() { tr.NewAbstraction(source.Span{}, NoIdentID, x) })
	assert.Panics(t, func() { tr.NewIdentRef(NoIdentID) })
	assert.Panics(t, func() { tr.NewIdent(NoTokenID, NoIdentID) })
}

func TestStickyAllocationError(t *testing.T) {
	a, err := arena.NewAligned(NodeBlockSize*2, NodeBlockSize, 1)
	require.NoError(t, err)
	tr := NewTree(a, 0)

	// lexeme + token fill both blocks
	tok := tr.NewToken("x", 1, 1, 2, source.Span{Start: 0, End: 1})
	require.True(t, tok.IsValid())
	id := tr.NewIdent(tok, NoIdentID)
	assert.False(t, id.IsValid())
	require.ErrorIs(t, tr.Err(), arena.ErrExhausted)

	// later constructors short-circuit instead of panicking on missing children
	assert.False(t, tr.NewIdentRef(id).IsValid())
}
