package future

// Snapshot is one consistent observation of a future. Done implies
// exactly one of: Cancelled, Err != nil, or Value holding the result.
type Snapshot[T any] struct {
	Done      bool
	Cancelled bool
	Value     T
	Err       error
}

// SnapshotStrategy selects how Snapshot reads terminal state. The two
// variants are independent implementations behind one interface,
// chosen at construction time; comparing them never involves swapping
// a shared definition.
type SnapshotStrategy int

const (
	// LocklessFinished skips the mutex when the future is already
	// finished. This is the default and the right choice in practice:
	// a result is overwhelmingly read after it is known to be ready.
	LocklessFinished SnapshotStrategy = iota

	// AlwaysLock takes the mutex on every read. Kept as an
	// independently constructible baseline for benchmarks and for
	// callers that want the simplest possible reasoning.
	AlwaysLock
)

// Config holds future construction options.
type Config struct {
	// Strategy selects the snapshot read path. Defaults to
	// LocklessFinished.
	Strategy SnapshotStrategy
}

// reader is the snapshot strategy interface.
type reader[T any] interface {
	snapshot(f *Future[T]) Snapshot[T]
}

type locklessReader[T any] struct{}

// snapshot is the fast path and the concurrency-critical invariant of
// this package. FINISHED is a publish-once event: SetResult/SetError
// fully populate value/err strictly before the atomic state store, and
// the atomic load here orders before the payload reads. A reader that
// observes StateFinished may therefore read the payload without the
// mutex — it is final and identical for every subsequent reader.
//
// Any other observation falls through to the locked reader. The state
// can flip between this check and the lock acquisition there, which is
// why the locked reader re-checks state under the mutex; that re-check
// must not be optimized away.
func (locklessReader[T]) snapshot(f *Future[T]) Snapshot[T] {
	if State(f.state.Load()) == StateFinished {
		return Snapshot[T]{Done: true, Value: f.value, Err: f.err}
	}
	return lockedReader[T]{}.snapshot(f)
}

type lockedReader[T any] struct{}

func (lockedReader[T]) snapshot(f *Future[T]) Snapshot[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch State(f.state.Load()) {
	case StateFinished:
		return Snapshot[T]{Done: true, Value: f.value, Err: f.err}
	case StateCancelled, StateCancelledNotified:
		return Snapshot[T]{Done: true, Cancelled: true}
	default:
		return Snapshot[T]{}
	}
}
