package timerheap

import (
	"container/heap"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/goasync/pkg/metrics"
)

// Clock provides the current time. It can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Config holds scheduler configuration.
type Config struct {
	// Clock provides the current time for ScheduleAfter, ScheduleCron
	// and Reschedule. If nil, SystemClock is used. PopReady and
	// PeekNextDeadline take explicit instants and never consult it.
	Clock Clock

	// Location for cron schedule evaluation. If nil, time.Local is used.
	Location *time.Location

	// Name labels this scheduler's metrics.
	Name string

	// Metrics configures Prometheus instrumentation. Disabled by default.
	Metrics metrics.Config
}

// Scheduler maintains the set of not-yet-fired timer handles and
// answers "what is due now / next?".
//
// The heap is owned by a single scheduling loop: Schedule, PopReady,
// PeekNextDeadline and Reschedule are serialized by an internal mutex,
// while Handle.Cancel is the one operation designed to be invoked
// concurrently from other goroutines and therefore never touches the
// heap structure.
type Scheduler struct {
	clock      Clock
	location   *time.Location
	cronParser cron.Parser
	name       string
	reg        *metrics.Registry

	mu   sync.Mutex
	heap handleHeap
	seq  uint64
}

// New creates a scheduler with default configuration.
func New() *Scheduler {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) *Scheduler {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	name := cfg.Name
	if name == "" {
		name = "default"
	}

	return &Scheduler{
		clock:      clock,
		location:   location,
		cronParser: cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		name:       name,
		reg:        cfg.Metrics.Resolve(),
	}
}

// Schedule inserts a callback to fire at the given absolute deadline
// and returns its handle so the caller may cancel it later. It always
// succeeds.
func (s *Scheduler) Schedule(when time.Time, fn func()) *Handle {
	return s.insert(&Handle{when: when, fn: fn})
}

// ScheduleAfter inserts a callback to fire after the given delay.
func (s *Scheduler) ScheduleAfter(delay time.Duration, fn func()) *Handle {
	return s.insert(&Handle{when: s.clock.Now().Add(delay), fn: fn})
}

// ScheduleRepeating inserts a callback to first fire one interval from
// now. After each fire the owner passes the handle to Reschedule to
// arm the next occurrence.
func (s *Scheduler) ScheduleRepeating(interval time.Duration, fn func()) (*Handle, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %v", interval)
	}
	return s.insert(&Handle{
		when:     s.clock.Now().Add(interval),
		fn:       fn,
		interval: interval,
	}), nil
}

// ScheduleCron inserts a callback to fire at the cron expression's next
// activation. Expressions use the six-field form with seconds.
func (s *Scheduler) ScheduleCron(cronExpr string, fn func()) (*Handle, error) {
	if cronExpr == "" {
		return nil, fmt.Errorf("cron expression cannot be empty")
	}

	schedule, err := s.cronParser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	return s.insert(&Handle{
		when:     schedule.Next(s.clock.Now().In(s.location)),
		fn:       fn,
		schedule: schedule,
	}), nil
}

// Reschedule arms the next occurrence of a repeating or cron handle
// after it has fired, returning the fresh handle. It returns nil for
// one-shot handles and for handles that were cancelled in the meantime;
// cancelling the old handle does not cancel the new one.
func (s *Scheduler) Reschedule(h *Handle) *Handle {
	if h == nil || h.cancelled.Load() || !h.Repeats() {
		return nil
	}

	next := &Handle{fn: h.fn, schedule: h.schedule, interval: h.interval}
	if h.schedule != nil {
		next.when = h.schedule.Next(s.clock.Now().In(s.location))
	} else {
		next.when = s.clock.Now().Add(h.interval)
	}
	return s.insert(next)
}

func (s *Scheduler) insert(h *Handle) *Handle {
	s.mu.Lock()
	s.seq++
	h.seq = s.seq
	heap.Push(&s.heap, h)
	size := len(s.heap)
	s.mu.Unlock()

	if s.reg != nil {
		s.reg.TimersScheduled.WithLabelValues(s.name).Inc()
		s.reg.TimerHeapSize.WithLabelValues(s.name).Set(float64(size))
	}
	return h
}

// PopReady removes and returns the earliest live handle whose deadline
// is at or before now, discarding cancelled handles encountered at the
// top of the heap. It returns nil when the heap is empty or the
// earliest live deadline is still in the future.
func (s *Scheduler) PopReady(now time.Time) *Handle {
	s.mu.Lock()
	h, reaped := s.popReadyLocked(now)
	size := len(s.heap)
	s.mu.Unlock()

	if s.reg != nil {
		if reaped > 0 {
			s.reg.TimersReaped.WithLabelValues(s.name).Add(float64(reaped))
		}
		if h != nil {
			s.reg.TimersPopped.WithLabelValues(s.name).Inc()
		}
		s.reg.TimerHeapSize.WithLabelValues(s.name).Set(float64(size))
	}
	return h
}

func (s *Scheduler) popReadyLocked(now time.Time) (*Handle, int) {
	reaped := 0
	for len(s.heap) > 0 {
		top := s.heap[0]
		if top.cancelled.Load() {
			heap.Pop(&s.heap)
			reaped++
			continue
		}
		if top.when.After(now) {
			return nil, reaped
		}
		heap.Pop(&s.heap)
		return top, reaped
	}
	return nil, reaped
}

// PeekNextDeadline returns the deadline of the earliest live handle
// without removing it, and false when no live handle remains. Cancelled
// handles reached at the top are compacted away, so the peek itself is
// non-destructive only for live entries.
func (s *Scheduler) PeekNextDeadline() (time.Time, bool) {
	s.mu.Lock()
	reaped := 0
	for len(s.heap) > 0 && s.heap[0].cancelled.Load() {
		heap.Pop(&s.heap)
		reaped++
	}
	var when time.Time
	ok := len(s.heap) > 0
	if ok {
		when = s.heap[0].when
	}
	size := len(s.heap)
	s.mu.Unlock()

	if s.reg != nil && reaped > 0 {
		s.reg.TimersReaped.WithLabelValues(s.name).Add(float64(reaped))
		s.reg.TimerHeapSize.WithLabelValues(s.name).Set(float64(size))
	}
	return when, ok
}

// Len returns the number of handles resident in the heap, cancelled
// entries included.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.heap)
}
