/*
Package future provides a single-assignment completion object with a
small monotonic state machine and a synchronization-light read path.

A Future[T] is created by whoever owns the asynchronous unit of work
and shared by reference between the producer, who settles it exactly
once with SetResult, SetError or Cancel, and any number of consumers,
who read it with Snapshot, Wait or Result. The object arbitrates
concurrent access internally.

State machine:

	PENDING -> RUNNING (informational)
	PENDING|RUNNING -> CANCELLED -> CANCELLED_AND_NOTIFIED (terminal)
	PENDING|RUNNING -> FINISHED (terminal, result XOR error)

At most one producer ever settles a future; a second attempt returns a
ResolutionError (SetResult/SetError) or false (Cancel) and never
touches the stored payload.

The read path:

	snap := fut.Snapshot()
	if snap.Done {
		// snap.Cancelled, snap.Value and snap.Err are final
	}

Snapshot of an already-finished future takes no lock. The transition
into FINISHED is a publish-once event — the payload is fully written
before the atomic state flag flips — so observing FINISHED is enough to
read the payload safely. Every other state still changes concurrently
and is read under the mutex, with a state re-check after acquiring it.
The alternative always-lock read is available via Config.Strategy for
comparison.

Waiting:

	snap, err := fut.WaitTimeout(time.Second) // err == ErrTimeout if still pending
	snap, err = fut.Wait(ctx)
	v, err := fut.Result(ctx) // value, stored error, or ErrCancelled

See pkg/executor for a worker pool that produces futures, and
pkg/future/redisstore for publishing settled results to Redis.
*/
package future
