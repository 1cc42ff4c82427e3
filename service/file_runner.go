package service

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ludo-technologies/srcscan/domain"
)

// FileResult is the outcome of running a per-file function on one path
type FileResult[T any] struct {
	Path  string
	Value T
	Err   error
}

// FileRunner applies a per-file function across a file list, either on a
// bounded worker pool or sequentially. Results always come back in input
// order, so both modes fold to the same output.
type FileRunner struct {
	parallel bool
	workers  int
	progress domain.ProgressManager
}

// NewFileRunner creates a runner; parallel selects the worker pool
func NewFileRunner(parallel bool) *FileRunner {
	return &FileRunner{parallel: parallel, workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers overrides the worker count; values below 1 keep the default
func (r *FileRunner) WithWorkers(n int) *FileRunner {
	if n > 0 {
		r.workers = n
	}
	return r
}

// WithProgress reports per-file progress to pm
func (r *FileRunner) WithProgress(pm domain.ProgressManager) *FileRunner {
	r.progress = pm
	return r
}

// Parallel reports whether the runner uses the worker pool
func (r *FileRunner) Parallel() bool { return r.parallel }

// RunFiles calls fn for every file and returns one result per file in input
// order. Cancellation is checked between files; files not yet started when
// ctx is done are left out and ctx.Err() is returned.
func RunFiles[T any](ctx context.Context, r *FileRunner, files []string, fn func(ctx context.Context, path string) (T, error)) ([]FileResult[T], error) {
	results := make([]FileResult[T], len(files))
	started := make([]bool, len(files))

	if r.progress != nil {
		r.progress.Initialize(len(files))
		r.progress.Start()
	}
	var done atomic.Int64
	finish := func() {
		n := done.Add(1)
		if r.progress != nil {
			r.progress.Update(int(n), len(files))
		}
	}

	if !r.parallel || r.workers <= 1 || len(files) <= 1 {
		for i, path := range files {
			if ctx.Err() != nil {
				break
			}
			started[i] = true
			v, err := fn(ctx, path)
			results[i] = FileResult[T]{Path: path, Value: v, Err: err}
			finish()
		}
	} else {
		indexes := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < min(r.workers, len(files)); w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					v, err := fn(ctx, files[i])
					results[i] = FileResult[T]{Path: files[i], Value: v, Err: err}
					finish()
				}
			}()
		}
	feed:
		for i := range files {
			select {
			case <-ctx.Done():
				break feed
			case indexes <- i:
				started[i] = true
			}
		}
		close(indexes)
		wg.Wait()
	}

	if r.progress != nil {
		r.progress.Complete(ctx.Err() == nil)
	}

	if err := ctx.Err(); err != nil {
		out := results[:0]
		for i, res := range results {
			if started[i] {
				out = append(out, res)
			}
		}
		return out, err
	}
	return results, nil
}
