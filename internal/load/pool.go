// Package load runs a batch of tasks on a bounded worker pool and reports
// every outcome instead of stopping at the first failure.
//
// Tasks that share one api.RequestChannel race on a resource that is not safe
// for concurrent use. Results from such runs are non-deterministic and callers
// must treat failures as expected, not as defects.
package load

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options controls a run
type Options struct {
	// Requests is the number of tasks to run
	Requests int
	// Workers bounds how many tasks run at once; zero means Requests
	Workers int
}

// TaskError records the failure of one task
type TaskError struct {
	Index int
	Err   error
}

func (e TaskError) Error() string {
	return fmt.Sprintf("task %d: %v", e.Index, e.Err)
}

func (e TaskError) Unwrap() error {
	return e.Err
}

// Result summarises a run
type Result struct {
	Succeeded int
	Failed    int
	Errors    []TaskError
	Elapsed   time.Duration
}

// Err joins every task error, or returns nil when all tasks succeeded
func (r Result) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Task is one unit of work; i is its index in [0, Requests)
type Task func(ctx context.Context, i int) error

// Run executes opts.Requests tasks with at most opts.Workers in flight. A
// failing task does not cancel the others. Cancelling ctx stops tasks that
// have not started; they are counted as failed with ctx's error.
func Run(ctx context.Context, opts Options, task Task) Result {
	workers := opts.Workers
	if workers <= 0 || workers > opts.Requests {
		workers = opts.Requests
	}

	var (
		mu     sync.Mutex
		result Result
	)
	record := func(i int, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, TaskError{Index: i, Err: err})
			return
		}
		result.Succeeded++
	}

	start := time.Now()
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := 0; i < opts.Requests; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				record(i, err)
				return nil
			}
			record(i, runTask(ctx, i, task))
			return nil
		})
	}
	_ = g.Wait()
	result.Elapsed = time.Since(start)

	return result
}

// runTask converts a panicking task into a failure
func runTask(ctx context.Context, i int, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(ctx, i)
}
