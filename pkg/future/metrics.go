package future

import (
	"github.com/vnykmshr/goasync/pkg/metrics"
)

// Instrument records the future's eventual outcome in Prometheus
// counters under the given component label. The snapshot read path
// itself is never instrumented; only settlement is counted.
func Instrument[T any](f *Future[T], cfg metrics.Config, component string) {
	reg := cfg.Resolve()
	if reg == nil {
		return
	}

	f.OnDone(func(snap Snapshot[T]) {
		switch {
		case snap.Cancelled:
			reg.FuturesCancelled.WithLabelValues(component).Inc()
		case snap.Err != nil:
			reg.FuturesFailed.WithLabelValues(component).Inc()
		default:
			reg.FuturesResolved.WithLabelValues(component).Inc()
		}
	})
}
