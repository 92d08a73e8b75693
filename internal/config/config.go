// Package config loads skc.toml, the per-project compiler settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"skc/internal/arena"
	"skc/internal/ast"
	"skc/internal/hashmap"
)

// FileName is the name searched for by Find.
const FileName = "skc.toml"

type Config struct {
	Arena       ArenaConfig       `toml:"arena"`
	Symbols     SymbolsConfig     `toml:"symbols"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`

	// Path is the file the values came from; empty for Default.
	Path string `toml:"-"`
}

type ArenaConfig struct {
	Capacity uint64 `toml:"capacity"`
	// BlockSize 0 selects a packed arena.
	BlockSize  uint64 `toml:"block_size"`
	MaxRegions uint64 `toml:"max_regions"`
}

type SymbolsConfig struct {
	Buckets    int     `toml:"buckets"`
	LoadFactor float64 `toml:"load_factor"`
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

// Default returns the settings used when no skc.toml is found.
func Default() Config {
	return Config{
		Arena: ArenaConfig{
			Capacity:   1 << 20,
			BlockSize:  ast.NodeBlockSize,
			MaxRegions: 5,
		},
		Symbols: SymbolsConfig{
			Buckets:    1 << 5,
			LoadFactor: hashmap.MinLoadFactor,
		},
		Diagnostics: DiagnosticsConfig{
			Max:   100,
			Color: "auto",
		},
	}
}

// Find walks up from startDir looking for skc.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults. Keys missing from the file keep
// their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the nearest skc.toml above startDir, or returns Default
// when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	switch {
	case c.Arena.Capacity == 0:
		return errors.New("[arena].capacity must be positive")
	case c.Arena.Capacity > arena.MaxCapacity:
		return fmt.Errorf("[arena].capacity must not exceed %d", arena.MaxCapacity)
	case c.Arena.BlockSize != 0 && c.Arena.BlockSize < arena.WordSize:
		return fmt.Errorf("[arena].block_size must be 0 or at least %d", arena.WordSize)
	case c.Arena.MaxRegions == 0:
		return errors.New("[arena].max_regions must be positive")
	case c.Symbols.Buckets <= 0:
		return errors.New("[symbols].buckets must be positive")
	case c.Symbols.LoadFactor < hashmap.MinLoadFactor:
		return fmt.Errorf("[symbols].load_factor must be at least %v", hashmap.MinLoadFactor)
	case c.Diagnostics.Max < 0:
		return errors.New("[diagnostics].max must not be negative")
	}
	if _, err := ParseColorMode(c.Diagnostics.Color); err != nil {
		return fmt.Errorf("[diagnostics].color: %w", err)
	}
	return nil
}

// NewArena builds the arena described by c.
func (c ArenaConfig) NewArena() (*arena.Arena, error) {
	if c.BlockSize == 0 {
		return arena.New(c.Capacity, c.MaxRegions)
	}
	return arena.NewAligned(c.Capacity, c.BlockSize, c.MaxRegions)
}

type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "on", "always", "true":
		return ColorOn, nil
	case "off", "never", "false":
		return ColorOff, nil
	}
	return ColorAuto, fmt.Errorf("unknown color mode %q (want auto, on or off)", s)
}
