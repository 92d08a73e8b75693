package driver

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"skc/internal/ast"
	"skc/internal/bracket"
	"skc/internal/lexer"
	"skc/internal/parser"
	"skc/internal/sema"
	"skc/internal/sk"
	"skc/internal/source"
	"skc/internal/symbols"
)

// Stage names a pipeline stage.
type Stage uint8

const (
	StageNone Stage = iota
	StageParse
	StageCheck
	StageCurry
	StageConvert
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageCheck:
		return "check"
	case StageCurry:
		return "curry"
	case StageConvert:
		return "convert"
	}
	return "none"
}

// Result is what Compile produced. Reached is the last stage that
// succeeded. Failed is the stage that stopped the pipeline, StageNone when
// every requested stage succeeded.
type Result struct {
	*Context
	Program ast.ProgramID
	Check   sema.Result
	Forest  *sk.Forest
	Reached Stage
	Failed  Stage
}

// OK reports whether the pipeline ran to its end without errors.
func (r *Result) OK() bool {
	return r.Failed == StageNone && !r.Bag.HasErrors()
}

// Compile runs parse, check, curry and convert over the file at path.
// Problems in the source are diagnostics in Result.Bag; the returned error
// is reserved for I/O, arena exhaustion and internal failures.
func Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("could not open input file %s: %w", path, err)
	}
	cctx, err := newContext(fs, fs.Get(id), opts)
	if err != nil {
		return nil, err
	}
	res := &Result{Context: cctx}
	return res, res.run(ctx, opts.Stop)
}

// CompileSource runs the pipeline over an in-memory file.
func CompileSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	cctx, err := newContext(fs, file, opts)
	if err != nil {
		return nil, err
	}
	res := &Result{Context: cctx}
	return res, res.run(ctx, opts.Stop)
}

func (r *Result) run(ctx context.Context, stop Stage) error {
	if stop == StageNone {
		stop = StageConvert
	}
	steps := []struct {
		stage Stage
		fn    func(context.Context) (bool, error)
	}{
		{StageParse, r.parse},
		{StageCheck, r.check},
		{StageCurry, r.curry},
		{StageConvert, r.convert},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx := r.Timer.Begin(step.stage.String())
		ok, err := step.fn(ctx)
		r.Timer.End(idx, "")
		r.log.LogPhase(ctx, step.stage.String(), err)
		if err != nil {
			r.Failed = step.stage
			return err
		}
		if !ok {
			r.Failed = step.stage
			return nil
		}
		r.Reached = step.stage
		if step.stage == stop {
			break
		}
	}
	r.log.LogArena(ctx, r.Arena.Stats())
	r.log.DebugContext(ctx, "diagnostics", "count", r.Bag.Len(), "duplicates", r.reporter.Suppressed())
	return nil
}

func (r *Result) parse(ctx context.Context) (bool, error) {
	maxErrors, err := safecast.Conv[uint](max(r.Config.Diagnostics.Max, 0))
	if err != nil {
		return false, err
	}
	lx := lexer.New(r.File, lexer.Options{Reporter: r.Reporter()})
	res := parser.ParseFile(r.File, lx, r.Tree, parser.Options{MaxErrors: maxErrors, Reporter: r.Reporter()})
	if err := r.Tree.Err(); err != nil {
		return false, fmt.Errorf("parse: %w", err)
	}
	r.Program = res.Program
	r.log.DebugContext(ctx, "parsed", "stmts", res.Stmts, "errors", res.Errors)
	return !res.Failed(), nil
}

func (r *Result) check(ctx context.Context) (bool, error) {
	res, err := sema.Check(r.Tree, r.Program, sema.Options{
		Reporter: r.Reporter(),
		Hints: symbols.Hints{
			Buckets:    r.Config.Symbols.Buckets,
			LoadFactor: r.Config.Symbols.LoadFactor,
		},
	})
	if err != nil {
		return false, err
	}
	r.Check = res
	r.log.DebugContext(ctx, "checked", "names", res.Table.Len(), "undeclared", res.Undeclared, "rebound", res.Rebound)
	return res.OK(), nil
}

func (r *Result) curry(context.Context) (bool, error) {
	if err := sema.Curry(r.Tree, r.Program); err != nil {
		return false, fmt.Errorf("curry: %w", err)
	}
	return true, nil
}

func (r *Result) convert(ctx context.Context) (bool, error) {
	forest, err := bracket.Convert(sk.NewStore(r.Tree), r.Program, r.Check.Table, bracket.Options{Reporter: r.Reporter()})
	if err != nil {
		if errors.Is(err, bracket.ErrUnreachable) {
			return false, err
		}
		return false, fmt.Errorf("convert: %w", err)
	}
	r.Forest = forest
	r.log.DebugContext(ctx, "converted", "roots", forest.Len())
	return !r.Bag.HasErrors(), nil
}
