package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"skc/internal/diag"
	"skc/internal/source"
)

// FileResult is the outcome for one file of CheckFiles. Err is set for
// failures that are not source diagnostics: a missing file, a bad
// extension or an exhausted arena.
type FileResult struct {
	Path   string
	Result *Result
	Bag    *diag.Bag
	Err    error
}

// CheckFiles runs the pipeline over every path, up to jobs files at a time.
// Each file gets its own arena; results keep the order of paths. Sources are
// loaded into one shared file set before the workers start.
func CheckFiles(ctx context.Context, paths []string, opts Options, jobs int) (*source.FileSet, []FileResult, error) {
	fs := source.NewFileSet()
	results := make([]FileResult, len(paths))
	files := make([]*source.File, len(paths))

	for i, path := range paths {
		results[i] = FileResult{Path: path, Bag: diag.NewBag(opts.Config.Diagnostics.Max)}
		if err := ValidatePath(path); err != nil {
			results[i].Err = err
			continue
		}
		id, err := fs.Load(path)
		if err != nil {
			results[i].Err = fmt.Errorf("could not open input file %s: %w", path, err)
			continue
		}
		files[i] = fs.Get(id)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		if file == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cctx, err := newContext(fs, file, opts)
			if err != nil {
				results[i].Err = err
				return nil
			}
			res := &Result{Context: cctx}
			results[i].Err = res.run(gctx, opts.Stop)
			results[i].Result = res
			results[i].Bag = res.Bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fs, results, err
	}
	return fs, results, nil
}
