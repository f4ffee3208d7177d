// Package tasks runs fire-and-forget background work.
//
// A Runner detaches each task from the request that spawned it: the task gets
// its own context with a fixed timeout, panics are recovered, and failures are
// logged but never reported back to the caller.
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single background task.
const DefaultTimeout = 2 * time.Minute

// Runner executes background tasks on detached contexts.
type Runner struct {
	logger  *zap.SugaredLogger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRunner creates a runner with the default task timeout.
func NewRunner(logger *zap.SugaredLogger) *Runner {
	return &Runner{logger: logger, timeout: DefaultTimeout}
}

// NewRunnerWithTimeout creates a runner with a custom task timeout.
func NewRunnerWithTimeout(logger *zap.SugaredLogger, timeout time.Duration) *Runner {
	return &Runner{logger: logger, timeout: timeout}
}

// Go runs fn in a new goroutine. The caller is never blocked and never sees
// the task's outcome; errors and panics are logged under the task name.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Errorw("background task panicked", "task", name, "panic", rec)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			r.logger.Errorw("background task failed", "task", name, "error", err)
			return
		}
		r.logger.Debugw("background task completed", "task", name)
	}()
}

// Wait blocks until all started tasks have finished. Used on shutdown and in
// tests that assert on background effects.
func (r *Runner) Wait() {
	r.wg.Wait()
}
