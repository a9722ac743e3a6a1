package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"compilab/internal/diag"
	"compilab/internal/pipeline"
	"compilab/internal/source"
	"compilab/internal/stage"
)

// FileResult is the outcome of analysing one file in its own session.
type FileResult struct {
	Path     string
	File     *source.File
	Session  string // session id
	Snapshot pipeline.Snapshot
	Report   pipeline.RunReport
	Err      error // загрузка файла или ошибка запуска
}

// Failed reports whether the file could not be analysed or a stage failed.
func (r FileResult) Failed() bool {
	if r.Err != nil {
		return true
	}
	for _, res := range r.Snapshot.Results {
		if res.Status == pipeline.StatusFailed || res.Status == pipeline.StatusCancelled {
			return true
		}
	}
	return false
}

// Diagnostics returns every diagnostic of the file ordered by stage and
// position. A load failure is reported as a single internal diagnostic.
func (r FileResult) Diagnostics() []diag.Diagnostic {
	if r.File == nil && r.Err != nil {
		return []diag.Diagnostic{{
			Severity: diag.SevError,
			Code:     diag.InternalLoadFile,
			Message:  "failed to load file: " + r.Err.Error(),
		}}
	}
	return r.Snapshot.AllDiagnostics()
}

// AnalyzeFile loads path into a fresh session and runs it through the
// requested stage.
func AnalyzeFile(ctx context.Context, path string, through stage.Stage, opts Options) FileResult {
	res := FileResult{Path: path}
	file, err := source.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.File = file

	if opts.Name == "" || opts.Name == "<buffer>" {
		opts.Name = path
	}
	sess, err := NewSession(opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Session = sess.ID()
	sess.EditText(string(file.Content))
	sess.MarkSaved()

	res.Report, res.Err = sess.RunThrough(ctx, through)
	res.Snapshot = sess.State()
	return res
}

// CheckFiles analyses every path through Semantic concurrently, one session
// per file, with at most opts.Jobs files in flight. Results keep the order of
// paths. Only context cancellation aborts the whole batch.
func CheckFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fileOpts := opts
			fileOpts.Name = path
			results[i] = AnalyzeFile(gctx, path, stage.Semantic, fileOpts)
			if err := gctx.Err(); err != nil {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("check: %w", err)
	}
	return results, nil
}
