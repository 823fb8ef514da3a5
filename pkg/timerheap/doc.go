/*
Package timerheap provides a deadline-ordered callback scheduler backed
by a binary min-heap.

Handles are ordered by (deadline, sequence number): the sequence number
is a stable tie-breaker, so callbacks scheduled for the same instant
fire in scheduling order. The handle itself is the heap element — heap
comparisons resolve with one direct handle comparison instead of a
compound (deadline, handle) pair.

Cancellation uses lazy deletion. Handle.Cancel flips a flag in O(1)
without restructuring the heap and is safe from any goroutine; the
cancelled entry is discarded when it naturally reaches the top during
PopReady or PeekNextDeadline. This trades a little retained heap space
for cancellation that never contends with the scheduling loop.

Basic usage:

	sched := timerheap.New()

	h := sched.Schedule(deadline, func() { flushBatch() })
	h.Cancel() // optional, from any goroutine

	for {
		now := time.Now()
		for h := sched.PopReady(now); h != nil; h = sched.PopReady(now) {
			h.Run()
			sched.Reschedule(h) // no-op for one-shot handles
		}
		next, ok := sched.PeekNextDeadline()
		if !ok {
			break
		}
		time.Sleep(time.Until(next))
	}

The heap is owned by one scheduling loop; only cancellation is meant to
be called concurrently. Driving the loop — sleeping until the next
deadline, dispatching callbacks — belongs to the caller.

Cron expressions (six-field, with seconds) and fixed intervals are
supported through ScheduleCron and ScheduleRepeating; after such a
handle fires, Reschedule arms its next occurrence.
*/
package timerheap
