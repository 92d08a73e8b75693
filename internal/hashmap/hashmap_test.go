package hashmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New[int](0, 0.75)
	require.ErrorIs(t, err, ErrNoBuckets)

	_, err = New[int](8, 0.5)
	require.ErrorIs(t, err, ErrLoadFactor)

	m, err := New[int](5, 0.75)
	require.NoError(t, err)
	assert.Equal(t, 8, m.Buckets())
}

func TestInsertGetRemove(t *testing.T) {
	m, err := New[string](4, 0.75)
	require.NoError(t, err)

	assert.False(t, m.Insert("id", "λx.x"))
	assert.False(t, m.Insert("const", "λx,y.x"))
	v, ok := m.Get("id")
	require.True(t, ok)
	assert.Equal(t, "λx.x", v)

	assert.True(t, m.Insert("id", "SKK"))
	v, _ = m.Get("id")
	assert.Equal(t, "SKK", v)
	assert.Equal(t, 2, m.Len())

	assert.True(t, m.Remove("id"))
	assert.False(t, m.Exists("id"))
	assert.False(t, m.Remove("id"))
	assert.Equal(t, 1, m.Len())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestKeyIsCopied(t *testing.T) {
	m, err := New[int](4, 0.75)
	require.NoError(t, err)

	buf := []byte("abc")
	m.Insert(string(buf), 1)
	buf[0] = 'x'
	assert.True(t, m.Exists("abc"))
}

func TestGrowthKeepsEntries(t *testing.T) {
	m, err := New[int](2, 0.75)
	require.NoError(t, err)

	const n = 500
	for i := range n {
		m.Insert(fmt.Sprintf("k%d", i), i)
	}
	for i := 0; i < n; i += 3 {
		m.Insert(fmt.Sprintf("k%d", i), -i)
	}
	assert.Equal(t, n, m.Len())
	assert.GreaterOrEqual(t, m.Buckets(), 512)
	assert.Less(t, float64(m.Len())/float64(m.Buckets()), 0.75)

	for i := range n {
		v, ok := m.Get(fmt.Sprintf("k%d", i))
		require.True(t, ok, "k%d lost", i)
		if i%3 == 0 {
			assert.Equal(t, -i, v)
		} else {
			assert.Equal(t, i, v)
		}
	}
}

func TestRemoveFromChain(t *testing.T) {
	// one bucket forces every key into the same chain until growth
	m, err := New[int](1, 100)
	require.NoError(t, err)

	for i := range 10 {
		m.Insert(fmt.Sprintf("c%d", i), i)
	}
	require.Equal(t, 1, m.Buckets())

	for _, k := range []string{"c0", "c5", "c9", "c3"} {
		require.True(t, m.Remove(k))
	}
	assert.Equal(t, 6, m.Len())
	for _, k := range []string{"c1", "c2", "c4", "c6", "c7", "c8"} {
		assert.True(t, m.Exists(k), k)
	}

	seen := 0
	m.Range(func(string, int) bool {
		seen++
		return true
	})
	assert.Equal(t, 6, seen)
}

func TestOwnedValues(t *testing.T) {
	var released []int
	m, err := New(4, 0.75, OwnValues(func(v int) { released = append(released, v) }))
	require.NoError(t, err)

	m.Insert("a", 1)
	m.Insert("a", 2)
	m.Insert("b", 3)
	m.Remove("b")
	assert.Equal(t, []int{1, 3}, released)

	m.Free()
	assert.Equal(t, []int{1, 3, 2}, released)
	assert.Zero(t, m.Len())
	assert.False(t, m.Exists("a"))
}
