package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"skc/internal/config"
	"skc/internal/diag"
	"skc/internal/diagfmt"
	"skc/internal/driver"
	"skc/internal/source"
)

// settings merges skc.toml with the persistent flags.
type settings struct {
	cfg     config.Config
	mode    config.ColorMode
	color   bool // stdout
	quiet   bool
	timings bool
	logger  *driver.Logger
}

func loadSettings(cmd *cobra.Command, sourcePath string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	cfg, err := loadConfig(cmd, sourcePath)
	if err != nil {
		return nil, err
	}
	if flags.Changed("max-diagnostics") {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		cfg.Diagnostics.Max = n
	}
	if flags.Changed("color") {
		c, err := flags.GetString("color")
		if err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
		cfg.Diagnostics.Color = c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode, err := config.ParseColorMode(cfg.Diagnostics.Color)
	if err != nil {
		return nil, err
	}
	levelName, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := driver.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")

	s := &settings{
		cfg:     cfg,
		mode:    mode,
		color:   useColor(mode, os.Stdout),
		quiet:   quiet,
		timings: timings,
		logger:  driver.NewTextLogger(os.Stderr, level),
	}
	color.NoColor = !s.color
	return s, nil
}

func loadConfig(cmd *cobra.Command, sourcePath string) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	dir := "."
	if sourcePath != "" {
		dir = filepath.Dir(sourcePath)
	}
	return config.Discover(dir)
}

func useColor(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	}
	return isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (s *settings) options(stop driver.Stage) driver.Options {
	return driver.Options{Config: s.cfg, Logger: s.logger, Stop: stop}
}

func (s *settings) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 && bag.Dropped() == 0 {
		return
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(s.mode, os.Stderr),
		ShowNotes: !s.quiet,
	})
}

func (s *settings) printTimings(w io.Writer, r *driver.Result) {
	if !s.timings || r == nil {
		return
	}
	if err := r.Timer.WriteSummary(w); err != nil {
		s.logger.Warn("timings", "error", err)
	}
}

// ioError renders a failure outside the diagnostics bag with the I/O tag.
func ioError(err error) error {
	return fmt.Errorf("%s: %w", diag.IOLoadFileError.Tag(), err)
}
