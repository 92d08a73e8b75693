package driver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"skc/internal/arena"
	"skc/internal/ast"
	"skc/internal/config"
	"skc/internal/diag"
	"skc/internal/observ"
	"skc/internal/source"
)

// SourceExt is the extension every input file must carry.
const SourceExt = ".ld"

var ErrExtension = errors.New("filename must have the following regular expression '*.ld'")

// ValidatePath checks the source extension.
func ValidatePath(path string) error {
	base := filepath.Base(path)
	if len(base) <= len(SourceExt) || !strings.HasSuffix(base, SourceExt) {
		return fmt.Errorf("%s: %w", path, ErrExtension)
	}
	return nil
}

// Options configure a compilation.
type Options struct {
	Config config.Config
	Logger *Logger
	// Stop ends the pipeline after the given stage.
	Stop Stage
}

func (o Options) logger() *Logger {
	if o.Logger == nil {
		return NoopLogger()
	}
	return o.Logger
}

// Context is the state one compilation threads through its phases. Every
// syntax and combinator node lives in Arena.
type Context struct {
	FileSet *source.FileSet
	File    *source.File
	Arena   *arena.Arena
	Tree    *ast.Tree
	Bag     *diag.Bag
	Config  config.Config
	Timer   *observ.Timer

	reporter *diag.DedupReporter
	log      *Logger
}

// Reporter returns the context's reporter. It adds to Bag and drops exact
// duplicates.
func (c *Context) Reporter() diag.Reporter {
	return c.reporter
}

// newContext allocates the arena for file. fs may be shared with other
// contexts as long as it is no longer written to.
func newContext(fs *source.FileSet, file *source.File, opts Options) (*Context, error) {
	a, err := opts.Config.Arena.NewArena()
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	bag := diag.NewBag(opts.Config.Diagnostics.Max)
	return &Context{
		FileSet:  fs,
		File:     file,
		Arena:    a,
		Tree:     ast.NewTree(a, file.ID),
		Bag:      bag,
		Config:   opts.Config,
		Timer:    observ.NewTimer(),
		reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		log:      opts.logger().WithFile(file.Path),
	}, nil
}

// Close releases the arena. Trees and forests of the context are invalid
// afterwards.
func (c *Context) Close() error {
	if c == nil || c.Arena == nil {
		return nil
	}
	err := c.Arena.Destroy()
	c.Arena = nil
	return err
}
