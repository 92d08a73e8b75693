package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"skc/internal/arena"
	"skc/internal/ast"
	"skc/internal/lexer"
	"skc/internal/parser"
	"skc/internal/sema"
	"skc/internal/source"
)

func parse(t *testing.T, src string) (*ast.Tree, ast.ProgramID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("main.ld", []byte(src)))
	a, err := arena.NewAligned(1<<16, ast.NodeBlockSize, 4)
	require.NoError(t, err)
	tree := ast.NewTree(a, file.ID)
	res := parser.ParseFile(file, lexer.New(file, lexer.Options{}), tree, parser.Options{})
	require.False(t, res.Failed())
	return tree, res.Program, file
}

func TestSpanInvariantsHold(t *testing.T) {
	tree, prog, file := parse(t, "id = λx.x;\ntwice = \\f, x -> f (f x);\nk = (λx y.x) id;\n")
	require.NoError(t, CheckSpanInvariants(tree, prog, file))
}

func TestCheckCurried(t *testing.T) {
	tree, prog, _ := parse(t, "k = \\x y z. x z (y z);\n")
	require.Error(t, CheckCurried(tree, prog))

	require.NoError(t, sema.Curry(tree, prog))
	require.NoError(t, CheckCurried(tree, prog))
}
