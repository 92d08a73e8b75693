package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skc/internal/arena"
	"skc/internal/config"
	"skc/internal/diag"
	"skc/internal/sk"
	"skc/internal/testkit"
)

const combinators = `id = λx.x;
const = λx y.x;
twice = \f x -> f (f x);
app = id id;
`

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func opts() Options {
	return Options{Config: config.Default()}
}

func forestTerms(f *sk.Forest) map[string]string {
	out := make(map[string]string, f.Len())
	for _, r := range f.All() {
		out[f.Store().Tree().Name(r.Ident)] = f.Store().Format(r.Node)
	}
	return out
}

func TestValidatePath(t *testing.T) {
	for _, ok := range []string{"main.ld", "dir/a.ld", "x.y.ld"} {
		assert.NoError(t, ValidatePath(ok), ok)
	}
	for _, bad := range []string{"main.lc", ".ld", "dir/.ld", "main.ld.txt", "main"} {
		assert.ErrorIs(t, ValidatePath(bad), ErrExtension, bad)
	}
}

func TestCompileFile(t *testing.T) {
	path := writeSource(t, "main.ld", combinators)

	res, err := Compile(context.Background(), path, opts())
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Close() })

	require.True(t, res.OK(), "%v", res.Bag.Items())
	assert.Equal(t, StageConvert, res.Reached)
	assert.Equal(t, map[string]string{
		"id":    "S K K",
		"const": "K",
		"twice": "S (S (K S) K) (S K K)",
		"app":   "id id",
	}, forestTerms(res.Forest))
	assert.Len(t, res.Timer.Report().Phases, 4)
	require.NoError(t, testkit.CheckCurried(res.Tree, res.Program))
}

func TestCompileMissingFile(t *testing.T) {
	_, err := Compile(context.Background(), filepath.Join(t.TempDir(), "nope.ld"), opts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open input file")
}

func TestCompileBadExtension(t *testing.T) {
	_, err := Compile(context.Background(), "main.lc", opts())
	assert.ErrorIs(t, err, ErrExtension)
}

func TestCompileStopsOnSyntaxErrors(t *testing.T) {
	res, err := CompileSource(context.Background(), "main.ld", []byte("a = ;\nb = λx.x;\n"), opts())
	require.NoError(t, err)
	assert.Equal(t, StageParse, res.Failed)
	assert.Equal(t, StageNone, res.Reached)
	assert.Nil(t, res.Forest)
	assert.Equal(t, 1, res.Bag.Count(diag.SynExpectExpression))
}

func TestCompileStopsOnUndeclared(t *testing.T) {
	res, err := CompileSource(context.Background(), "main.ld", []byte("a = λx.y;\n"), opts())
	require.NoError(t, err)
	assert.Equal(t, StageCheck, res.Failed)
	assert.False(t, res.OK())
	assert.Equal(t, 1, res.Check.Undeclared)
	assert.Nil(t, res.Forest)
}

func TestCompileRebindingIsWarning(t *testing.T) {
	res, err := CompileSource(context.Background(), "main.ld", []byte("a = λx.x;\na = λy.y;\n"), opts())
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 1, res.Bag.Count(diag.CheckRebinding))
	assert.Equal(t, 2, res.Forest.Len())
}

func TestCompileStopAfterCheck(t *testing.T) {
	o := opts()
	o.Stop = StageCheck
	res, err := CompileSource(context.Background(), "main.ld", []byte(combinators), o)
	require.NoError(t, err)
	assert.Equal(t, StageCheck, res.Reached)
	assert.True(t, res.OK())
	assert.Nil(t, res.Forest)
	assert.Error(t, testkit.CheckCurried(res.Tree, res.Program))
}

func TestCompileArenaExhausted(t *testing.T) {
	o := opts()
	o.Config.Arena = config.ArenaConfig{Capacity: 1 << 10, BlockSize: 64, MaxRegions: 1}
	_, err := CompileSource(context.Background(), "main.ld", []byte(combinators), o)
	assert.ErrorIs(t, err, arena.ErrExhausted)
}

func TestCompileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CompileSource(ctx, "main.ld", []byte(combinators), opts())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileLogs(t *testing.T) {
	var buf bytes.Buffer
	o := opts()
	o.Logger = NewTextLogger(&buf, -4)
	_, err := CompileSource(context.Background(), "main.ld", []byte(combinators), o)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "file=main.ld")
	assert.Contains(t, out, "phase=convert")
	assert.Contains(t, out, "msg=arena")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", lvl.String())
	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, "WARN", lvl.String())
	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestTokenizeSource(t *testing.T) {
	res := TokenizeSource("main.ld", []byte("a = $;"), 10)
	require.NotEmpty(t, res.Tokens)
	assert.Equal(t, 1, res.Bag.Count(diag.LexUnknownChar))
}

func TestCheckFiles(t *testing.T) {
	good := writeSource(t, "good.ld", combinators)
	bad := writeSource(t, "bad.ld", "a = λx.y;\n")
	missing := filepath.Join(t.TempDir(), "missing.ld")

	fs, results, err := CheckFiles(context.Background(), []string{good, "wrong.txt", bad, missing}, opts(), 2)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, 2, fs.Len())

	assert.Equal(t, good, results[0].Path)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Result.OK())
	assert.Equal(t, 4, results[0].Result.Forest.Len())

	assert.ErrorIs(t, results[1].Err, ErrExtension)
	assert.Nil(t, results[1].Result)

	require.NoError(t, results[2].Err)
	assert.True(t, results[2].Bag.HasErrors())
	assert.Equal(t, StageCheck, results[2].Result.Failed)

	assert.Error(t, results[3].Err)
	assert.Nil(t, results[3].Result)

	for _, r := range results {
		if r.Result != nil {
			assert.NoError(t, r.Result.Close())
		}
	}
}
