package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint64(1<<20), cfg.Arena.Capacity)
	assert.Equal(t, uint64(5), cfg.Arena.MaxRegions)
	assert.Equal(t, 32, cfg.Symbols.Buckets)

	a, err := cfg.Arena.NewArena()
	require.NoError(t, err)
	assert.True(t, a.IsAligned())
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, `
[arena]
block_size = 0
max_regions = 2

[diagnostics]
color = "off"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, uint64(0), cfg.Arena.BlockSize)
	assert.Equal(t, uint64(2), cfg.Arena.MaxRegions)
	assert.Equal(t, uint64(1<<20), cfg.Arena.Capacity)
	assert.Equal(t, "off", cfg.Diagnostics.Color)

	a, err := cfg.Arena.NewArena()
	require.NoError(t, err)
	assert.False(t, a.IsAligned())
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"unknown key", "[arena]\nsize = 3\n", "unknown keys: arena.size"},
		{"small block", "[arena]\nblock_size = 4\n", "block_size"},
		{"low load factor", "[symbols]\nload_factor = 0.5\n", "load_factor"},
		{"bad color", "[diagnostics]\ncolor = \"pink\"\n", "color"},
		{"syntax", "[arena\n", "failed to parse TOML"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(write(t, t.TempDir(), tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, root, "[symbols]\nbuckets = 8\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Symbols.Buckets)
	assert.Equal(t, filepath.Join(root, FileName), cfg.Path)
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "ON": ColorOn, "never": ColorOff} {
		got, err := ParseColorMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
