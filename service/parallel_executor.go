package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ludo-technologies/srcscan/domain"
)

// DefaultRunTimeout bounds a whole combined run
const DefaultRunTimeout = 10 * time.Minute

// ParallelExecutorImpl runs independent analyses of one scan side by side.
// A concurrency of 1 runs them in task order.
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
}

// NewParallelExecutor creates an executor with unlimited concurrency
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{timeout: DefaultRunTimeout}
}

// Execute runs every enabled task and joins their errors in task order
func (pe *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	var enabled []domain.ExecutableTask
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	if len(enabled) == 0 {
		return nil
	}

	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	errs := make([]error, len(enabled))
	run := func(i int) {
		t := enabled[i]
		if err := ctx.Err(); err != nil {
			errs[i] = fmt.Errorf("task %s cancelled: %w", t.Name(), err)
			return
		}
		if _, err := t.Execute(ctx); err != nil {
			errs[i] = fmt.Errorf("task %s failed: %w", t.Name(), err)
		}
	}

	if pe.maxConcurrency == 1 {
		for i := range enabled {
			run(i)
		}
		return pe.result(ctx, errs)
	}

	var sem chan struct{}
	if pe.maxConcurrency > 1 {
		sem = make(chan struct{}, pe.maxConcurrency)
	}
	var wg sync.WaitGroup
	for i := range enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			run(i)
		}()
	}
	wg.Wait()
	return pe.result(ctx, errs)
}

func (pe *ParallelExecutorImpl) result(ctx context.Context, errs []error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewAnalysisError(fmt.Sprintf("analysis timed out after %v", pe.timeout), ctx.Err())
	}
	return errors.Join(errs...)
}

// SetMaxConcurrency sets the maximum number of concurrent tasks; 0 means unlimited
func (pe *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	pe.maxConcurrency = max
}

// SetTimeout sets the timeout for all tasks; 0 disables it
func (pe *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	pe.timeout = timeout
}

// SimpleTask adapts a function to domain.ExecutableTask
type SimpleTask struct {
	name    string
	enabled bool
	execute func(context.Context) (interface{}, error)
}

// NewSimpleTask creates a new simple task
func NewSimpleTask(name string, enabled bool, execute func(context.Context) (interface{}, error)) *SimpleTask {
	return &SimpleTask{name: name, enabled: enabled, execute: execute}
}

func (t *SimpleTask) Name() string { return t.name }

func (t *SimpleTask) IsEnabled() bool { return t.enabled }

// Execute runs the task function
func (t *SimpleTask) Execute(ctx context.Context) (interface{}, error) {
	if t.execute == nil {
		return nil, fmt.Errorf("task %s has no execute function", t.name)
	}
	return t.execute(ctx)
}
