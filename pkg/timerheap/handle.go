package timerheap

import (
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Handle represents one scheduled callback. A Handle is the heap element
// itself: it orders directly by (deadline, sequence) with no wrapper
// pair, so heap comparisons resolve with a single call.
//
// The sequence number is a stable tie-breaker: handles sharing a
// deadline fire in the order they were scheduled.
type Handle struct {
	when time.Time
	seq  uint64
	fn   func()

	// cancelled is the only field touched from goroutines other than
	// the owning scheduling loop. Flipping it never moves the handle in
	// the heap; the entry is reaped lazily when it reaches the top.
	cancelled atomic.Bool

	// recurrence, nil/zero for one-shot handles
	schedule cron.Schedule
	interval time.Duration
}

// When returns the handle's absolute deadline.
func (h *Handle) When() time.Time {
	return h.when
}

// Cancel marks the handle so it will never fire. It is an O(1) flag
// set, idempotent, and safe to call from any goroutine; the heap entry
// is discarded the next time it surfaces.
func (h *Handle) Cancel() {
	h.cancelled.Store(true)
}

// Cancelled reports whether the handle has been cancelled.
func (h *Handle) Cancelled() bool {
	return h.cancelled.Load()
}

// Repeats reports whether the handle carries a recurrence and can be
// passed to Scheduler.Reschedule after it fires.
func (h *Handle) Repeats() bool {
	return h.schedule != nil || h.interval > 0
}

// Run invokes the callback unless the handle was cancelled. A
// cancellation that races the fire is absorbed here; it is not an
// error.
func (h *Handle) Run() {
	if h.cancelled.Load() {
		return
	}
	h.fn()
}

// less orders handles by (deadline, sequence).
func (h *Handle) less(other *Handle) bool {
	if !h.when.Equal(other.when) {
		return h.when.Before(other.when)
	}
	return h.seq < other.seq
}

// handleHeap is a binary min-heap of handles satisfying heap.Interface.
// The earliest (deadline, sequence) pair sits at index 0.
type handleHeap []*Handle

func (hh handleHeap) Len() int           { return len(hh) }
func (hh handleHeap) Less(i, j int) bool { return hh[i].less(hh[j]) }
func (hh handleHeap) Swap(i, j int)      { hh[i], hh[j] = hh[j], hh[i] }

func (hh *handleHeap) Push(x any) {
	*hh = append(*hh, x.(*Handle))
}

func (hh *handleHeap) Pop() any {
	old := *hh
	n := len(old)
	h := old[n-1]
	old[n-1] = nil // allow GC
	*hh = old[:n-1]
	return h
}
