package future

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	errs "github.com/vnykmshr/goasync/pkg/common/errors"
)

// State enumerates the lifecycle of a Future. Transitions are monotonic
// and one-directional:
//
//	PENDING -> RUNNING (informational)
//	PENDING|RUNNING -> CANCELLED -> CANCELLED_AND_NOTIFIED (terminal)
//	PENDING|RUNNING -> FINISHED (terminal)
type State int32

const (
	StatePending State = iota
	StateRunning
	StateCancelled
	StateCancelledNotified
	StateFinished
)

// String returns the state's wire-stable name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateRunning:
		return "RUNNING"
	case StateCancelled:
		return "CANCELLED"
	case StateCancelledNotified:
		return "CANCELLED_AND_NOTIFIED"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateFinished || s == StateCancelledNotified
}

// resolvable reports whether SetResult/SetError/Cancel may still succeed.
func (s State) resolvable() bool {
	return s == StatePending || s == StateRunning
}

// done reports whether the future has an observable outcome. CANCELLED
// counts: the outcome is fixed even before waiters are acknowledged.
func (s State) done() bool {
	return s >= StateCancelled
}

// Future is a single-assignment result slot shared by reference between
// one producer and any number of consumers. Exactly one of
// SetResult/SetError/Cancel ever succeeds; every later resolution
// attempt is rejected without altering the stored payload.
//
// All field transitions happen under the mutex. The one exception is
// the lockless snapshot read of an already-finished future, documented
// on locklessReader.
type Future[T any] struct {
	state atomic.Int32
	read  reader[T]

	mu        sync.Mutex
	value     T
	err       error
	callbacks *queue.Queue // of func(Snapshot[T]), FIFO
	done      chan struct{}
}

// New creates a pending future with the default (lockless-finished)
// snapshot strategy.
func New[T any]() *Future[T] {
	return NewWithConfig[T](Config{})
}

// NewWithConfig creates a pending future with custom configuration.
func NewWithConfig[T any](cfg Config) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	switch cfg.Strategy {
	case AlwaysLock:
		f.read = lockedReader[T]{}
	default:
		f.read = locklessReader[T]{}
	}
	return f
}

// State returns the current state.
func (f *Future[T]) State() State {
	return State(f.state.Load())
}

// Done returns a channel closed once the future has an outcome,
// whether finished or cancelled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Snapshot returns one consistent observation of the future.
func (f *Future[T]) Snapshot() Snapshot[T] {
	return f.read.snapshot(f)
}

// SetResult transitions the future to FINISHED with the given value.
// Resolving an already-settled future is a programming error and is
// reported, never silently absorbed.
func (f *Future[T]) SetResult(value T) error {
	f.mu.Lock()
	st := State(f.state.Load())
	if !st.resolvable() {
		f.mu.Unlock()
		return &errs.ResolutionError{Op: "SetResult", State: st.String()}
	}
	f.value = value
	// The payload store above must be complete before this state store:
	// the lockless snapshot path reads value/err without the mutex
	// purely on the strength of having observed StateFinished.
	f.state.Store(int32(StateFinished))
	close(f.done)
	cbs := f.drainCallbacksLocked()
	f.mu.Unlock()

	f.deliver(cbs)
	return nil
}

// SetError transitions the future to FINISHED carrying an error payload
// instead of a value. Same terminality rules as SetResult.
func (f *Future[T]) SetError(err error) error {
	f.mu.Lock()
	st := State(f.state.Load())
	if !st.resolvable() {
		f.mu.Unlock()
		return &errs.ResolutionError{Op: "SetError", State: st.String()}
	}
	f.err = err
	f.state.Store(int32(StateFinished))
	close(f.done)
	cbs := f.drainCallbacksLocked()
	f.mu.Unlock()

	f.deliver(cbs)
	return nil
}

// Cancel transitions a pending or running future to CANCELLED and
// reports whether cancellation took effect. Cancelling a settled
// future returns false and changes nothing; that is an expected,
// recoverable outcome, not an error.
func (f *Future[T]) Cancel() bool {
	f.mu.Lock()
	st := State(f.state.Load())
	if !st.resolvable() {
		f.mu.Unlock()
		return false
	}
	f.state.Store(int32(StateCancelled))
	close(f.done)
	cbs := f.drainCallbacksLocked()
	f.mu.Unlock()

	f.deliver(cbs)
	return true
}

// BeginRun is called by the executing worker just before starting the
// work and reports whether the work should run. A pending future moves
// to RUNNING. A future cancelled before pickup is acknowledged here —
// CANCELLED moves to CANCELLED_AND_NOTIFIED, the sole writer of that
// state, so the cancellation notification is delivered at most once.
func (f *Future[T]) BeginRun() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch State(f.state.Load()) {
	case StatePending:
		f.state.Store(int32(StateRunning))
		return true
	case StateCancelled:
		f.state.Store(int32(StateCancelledNotified))
		return false
	default:
		return false
	}
}

// OnDone registers fn to run once the future settles. If it already
// has, fn runs immediately on the calling goroutine. Callbacks run in
// registration order, exactly once.
func (f *Future[T]) OnDone(fn func(Snapshot[T])) {
	f.mu.Lock()
	if State(f.state.Load()).done() {
		f.mu.Unlock()
		fn(f.Snapshot())
		return
	}
	if f.callbacks == nil {
		f.callbacks = queue.New()
	}
	f.callbacks.Add(fn)
	f.mu.Unlock()
}

// Wait blocks until the future settles or ctx is done. A ctx error is
// returned as-is, distinct from both terminal outcomes.
func (f *Future[T]) Wait(ctx context.Context) (Snapshot[T], error) {
	select {
	case <-f.done:
		return f.Snapshot(), nil
	case <-ctx.Done():
		return Snapshot[T]{}, ctx.Err()
	}
}

// WaitTimeout blocks until the future settles or the timeout elapses,
// in which case it returns ErrTimeout: the caller can tell "still
// pending" apart from either terminal outcome.
func (f *Future[T]) WaitTimeout(d time.Duration) (Snapshot[T], error) {
	select {
	case <-f.done:
		return f.Snapshot(), nil
	default:
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.Snapshot(), nil
	case <-timer.C:
		return Snapshot[T]{}, errs.ErrTimeout
	}
}

// Result waits for the future and unpacks its outcome: the value, the
// stored error, ErrCancelled, or the ctx error.
func (f *Future[T]) Result(ctx context.Context) (T, error) {
	snap, err := f.Wait(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if snap.Cancelled {
		var zero T
		return zero, errs.ErrCancelled
	}
	return snap.Value, snap.Err
}

func (f *Future[T]) drainCallbacksLocked() []func(Snapshot[T]) {
	if f.callbacks == nil || f.callbacks.Length() == 0 {
		return nil
	}
	cbs := make([]func(Snapshot[T]), 0, f.callbacks.Length())
	for f.callbacks.Length() > 0 {
		cbs = append(cbs, f.callbacks.Remove().(func(Snapshot[T])))
	}
	return cbs
}

// deliver runs drained callbacks outside the mutex so they may call
// back into the future.
func (f *Future[T]) deliver(cbs []func(Snapshot[T])) {
	if len(cbs) == 0 {
		return
	}
	snap := f.Snapshot()
	for _, fn := range cbs {
		fn(snap)
	}
}
