package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("prog.ld", []byte("a = b;"), 0)
	id2 := fs.Add("prog.ld", []byte("a = c;"), 0)
	require.NotEqual(t, id1, id2)

	latest, ok := fs.GetLatest("prog.ld")
	require.True(t, ok)
	assert.Equal(t, id2, latest)
	assert.Equal(t, "a = b;", string(fs.Get(id1).Content))
	assert.Equal(t, 2, fs.Len())
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.ld", []byte("a\nb\n"))
	f := fs.Get(id)

	assert.Equal(t, []uint32{1, 3}, f.LineIdx)
	assert.NotZero(t, f.Flags&FileVirtual)
}

func TestNormalization(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("crlf.ld", []byte("\xEF\xBB\xBFa = b;\r\nc = a;\r\n"))
	f := fs.Get(id)
	assert.Equal(t, "a = b;\nc = a;\n", string(f.Content))
	assert.NotZero(t, f.Flags&FileHadBOM)
	assert.NotZero(t, f.Flags&FileNormalizedCRLF)

	// e + combining acute composes to U+00E9
	id = fs.AddVirtual("nfc.ld", []byte("cafe\u0301 = x;"))
	f = fs.Get(id)
	assert.Equal(t, "caf\u00e9 = x;", string(f.Content))
	assert.NotZero(t, f.Flags&FileNormalizedNFC)
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.ld", []byte("id = λx.x;\nk = λx,y.x;\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 2})
	assert.Equal(t, LineCol{Line: 1, Col: 1}, start)
	assert.Equal(t, LineCol{Line: 1, Col: 3}, end)

	// "k" starts right after the first newline; λ is two bytes wide
	start, _ = fs.Resolve(Span{File: id, Start: 12, End: 13})
	assert.Equal(t, LineCol{Line: 2, Col: 1}, start)

	// the newline itself belongs to the line it terminates
	nl, _ := fs.Resolve(Span{File: id, Start: 11, End: 11})
	assert.Equal(t, LineCol{Line: 1, Col: 12}, nl)
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.ld", []byte("first\nsecond\nthird")))

	assert.Equal(t, "first", f.GetLine(1))
	assert.Equal(t, "second", f.GetLine(2))
	assert.Equal(t, "third", f.GetLine(3))
	assert.Empty(t, f.GetLine(0))
	assert.Empty(t, f.GetLine(4))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "load.ld")
	require.NoError(t, os.WriteFile(path, []byte("x = x;\r\n"), 0o600))

	fs := NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "x = x;\n", string(fs.Get(id).Content))

	_, err = fs.Load(filepath.Join(dir, "missing.ld"))
	require.Error(t, err)
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 1, End: 5}
	assert.Equal(t, Span{File: 1, Start: 1, End: 6}, a.Cover(b))
	assert.Equal(t, a, a.Cover(Span{File: 2, Start: 0, End: 9}))
	assert.True(t, Span{Start: 3, End: 3}.Empty())
	assert.Equal(t, uint32(2), a.Len())
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 1, Start: 2, End: 10}
	assert.True(t, outer.Contains(Span{File: 1, Start: 2, End: 10}))
	assert.True(t, outer.Contains(Span{File: 1, Start: 10, End: 10}))
	assert.False(t, outer.Contains(Span{File: 1, Start: 1, End: 4}))
	assert.False(t, outer.Contains(Span{File: 2, Start: 3, End: 4}))
}
