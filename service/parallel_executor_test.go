package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

func TestParallelExecutor_RunsEnabledTasks(t *testing.T) {
	var counter atomic.Int32
	tasks := []domain.ExecutableTask{
		NewSimpleTask("metrics", true, func(context.Context) (interface{}, error) { counter.Add(1); return nil, nil }),
		NewSimpleTask("deps", true, func(context.Context) (interface{}, error) { counter.Add(1); return nil, nil }),
		NewSimpleTask("style", false, func(context.Context) (interface{}, error) { counter.Add(100); return nil, nil }),
	}
	require.NoError(t, NewParallelExecutor().Execute(context.Background(), tasks))
	assert.Equal(t, int32(2), counter.Load())

	assert.NoError(t, NewParallelExecutor().Execute(context.Background(), nil))
}

func TestParallelExecutor_SequentialKeepsOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	task := func(name string) domain.ExecutableTask {
		return NewSimpleTask(name, true, func(context.Context) (interface{}, error) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil, nil
		})
	}
	pe := NewParallelExecutor()
	pe.SetMaxConcurrency(1)
	require.NoError(t, pe.Execute(context.Background(), []domain.ExecutableTask{task("a"), task("b"), task("c")}))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestParallelExecutor_JoinsErrors(t *testing.T) {
	errA, errB := errors.New("first broke"), errors.New("second broke")
	tasks := []domain.ExecutableTask{
		NewSimpleTask("first", true, func(context.Context) (interface{}, error) { return nil, errA }),
		NewSimpleTask("ok", true, func(context.Context) (interface{}, error) { return nil, nil }),
		NewSimpleTask("second", true, func(context.Context) (interface{}, error) { return nil, errB }),
	}
	err := NewParallelExecutor().Execute(context.Background(), tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "task first failed: first broke\ntask second failed: second broke")
}

func TestParallelExecutor_ConcurrencyLimit(t *testing.T) {
	var current, peak atomic.Int32
	var tasks []domain.ExecutableTask
	for i := 0; i < 6; i++ {
		tasks = append(tasks, NewSimpleTask("t", true, func(context.Context) (interface{}, error) {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			current.Add(-1)
			return nil, nil
		}))
	}
	pe := NewParallelExecutor()
	pe.SetMaxConcurrency(2)
	require.NoError(t, pe.Execute(context.Background(), tasks))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestParallelExecutor_Timeout(t *testing.T) {
	pe := NewParallelExecutor()
	pe.SetTimeout(20 * time.Millisecond)
	task := NewSimpleTask("slow", true, func(ctx context.Context) (interface{}, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	err := pe.Execute(context.Background(), []domain.ExecutableTask{task})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimpleTask_NilFunction(t *testing.T) {
	result, err := NewSimpleTask("empty", true, nil).Execute(context.Background())
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "no execute function")
}
