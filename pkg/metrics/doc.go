/*
Package metrics provides Prometheus instrumentation for goasync components.

All metrics live under the "goasync" namespace, grouped by subsystem:

  - timerheap: scheduled/popped/reaped counters and a heap size gauge
  - futures:   resolved/failed/cancelled counters
  - executor:  submission, completion, skip and duration metrics

Components accept a metrics.Config; the zero value disables collection.

	sched := timerheap.NewWithConfig(timerheap.Config{
		Name:    "sessions",
		Metrics: metrics.DefaultConfig(),
	})

A custom registry keeps metrics out of the default registerer:

	reg := prometheus.NewRegistry()
	cfg := metrics.Config{Enabled: true, Registry: reg}
*/
package metrics
