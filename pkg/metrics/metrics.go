// Package metrics provides Prometheus instrumentation for goasync components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for goasync components.
//
// The future snapshot read path is deliberately not instrumented: it is
// the latency-critical operation of the library and a counter increment
// would dominate its cost.
type Registry struct {
	// Timer Heap Metrics
	TimersScheduled *prometheus.CounterVec
	TimersPopped    *prometheus.CounterVec
	TimersReaped    *prometheus.CounterVec
	TimerHeapSize   *prometheus.GaugeVec

	// Future Metrics
	FuturesResolved  *prometheus.CounterVec
	FuturesFailed    *prometheus.CounterVec
	FuturesCancelled *prometheus.CounterVec

	// Executor Metrics
	TasksSubmitted  *prometheus.CounterVec
	TasksCompleted  *prometheus.CounterVec
	TasksSkipped    *prometheus.CounterVec
	TaskDuration    *prometheus.HistogramVec
	ExecutorWorkers *prometheus.GaugeVec
	ExecutorQueued  *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by goasync components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Timer Heap Metrics
		TimersScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "timerheap",
				Name:      "scheduled_total",
				Help:      "Total number of timer handles scheduled",
			},
			[]string{"scheduler_name"},
		),

		TimersPopped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "timerheap",
				Name:      "popped_total",
				Help:      "Total number of due timer handles returned by PopReady",
			},
			[]string{"scheduler_name"},
		),

		TimersReaped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "timerheap",
				Name:      "reaped_total",
				Help:      "Total number of cancelled handles discarded during heap traversal",
			},
			[]string{"scheduler_name"},
		),

		TimerHeapSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goasync",
				Subsystem: "timerheap",
				Name:      "heap_size",
				Help:      "Current number of handles resident in the heap, cancelled included",
			},
			[]string{"scheduler_name"},
		),

		// Future Metrics
		FuturesResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "futures",
				Name:      "resolved_total",
				Help:      "Total number of futures finished with a result",
			},
			[]string{"component"},
		),

		FuturesFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "futures",
				Name:      "failed_total",
				Help:      "Total number of futures finished with an error",
			},
			[]string{"component"},
		),

		FuturesCancelled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "futures",
				Name:      "cancelled_total",
				Help:      "Total number of futures cancelled before resolution",
			},
			[]string{"component"},
		),

		// Executor Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks submitted to the pool",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that ran to completion",
			},
			[]string{"pool_name"},
		),

		TasksSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "tasks_skipped_total",
				Help:      "Total number of tasks skipped because their future was cancelled before pickup",
			},
			[]string{"pool_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "task_duration_seconds",
				Help:      "Task execution duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		ExecutorWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "workers",
				Help:      "Number of workers in the pool",
			},
			[]string{"pool_name"},
		),

		ExecutorQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "queued",
				Help:      "Current number of tasks waiting in the pool queue",
			},
			[]string{"pool_name"},
		),
	}
}
