package executor

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/vnykmshr/goasync/pkg/future"
)

// Fn is a unit of work producing a value of type T.
type Fn[T any] func(ctx context.Context) (T, error)

// Submit hands fn to the pool and returns the future that will carry
// its outcome. The work runs with context.Background(); use
// SubmitWithContext to propagate cancellation and deadlines.
//
// Cancelling the returned future before a worker picks the job up
// prevents the work from ever running: the worker observes the
// cancellation through BeginRun and acknowledges it, completing the
// CANCELLED -> CANCELLED_AND_NOTIFIED transition.
func Submit[T any](p *Pool, fn Fn[T]) (*future.Future[T], error) {
	return SubmitWithContext(context.Background(), p, fn)
}

// SubmitWithContext hands fn to the pool with the given context. The
// context gates both queue admission and the work itself.
func SubmitWithContext[T any](ctx context.Context, p *Pool, fn Fn[T]) (*future.Future[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("fn cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Deterministic behavior for pre-canceled contexts.
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("cannot submit task: %w", ctx.Err())
	default:
	}

	fut := future.New[T]()

	run := func() {
		if !fut.BeginRun() {
			if p.reg != nil {
				p.reg.TasksSkipped.WithLabelValues(p.name).Inc()
			}
			return
		}

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				_ = fut.SetError(fmt.Errorf("task panicked: %v\n%s", r, debug.Stack()))
			}
			if p.reg != nil {
				p.reg.TaskDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
				p.reg.TasksCompleted.WithLabelValues(p.name).Inc()
			}
		}()

		value, err := fn(ctx)
		if err != nil {
			// The future may have been cancelled mid-run; that
			// rejection is expected and absorbed.
			_ = fut.SetError(err)
			return
		}
		_ = fut.SetResult(value)
	}

	abandon := func() {
		if fut.Cancel() {
			fut.BeginRun() // acknowledge: no worker will
		}
	}

	if err := p.enqueue(job{run: run, abandon: abandon}, ctx.Done()); err != nil {
		return nil, err
	}
	return fut, nil
}
