package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	if r.TimersScheduled == nil || r.FuturesResolved == nil || r.TasksSubmitted == nil {
		t.Fatal("registry metrics not initialized")
	}

	r.TimersScheduled.WithLabelValues("test").Add(3)
	if got := testutil.ToFloat64(r.TimersScheduled.WithLabelValues("test")); got != 3 {
		t.Errorf("TimersScheduled = %v, want 3", got)
	}
}

func TestConfigResolve(t *testing.T) {
	if got := (Config{}).Resolve(); got != nil {
		t.Error("disabled config should resolve to nil")
	}

	if got := DefaultConfig().Resolve(); got != DefaultRegistry {
		t.Error("default config should resolve to DefaultRegistry")
	}

	reg := prometheus.NewRegistry()
	custom := Config{Enabled: true, Registry: reg}.Resolve()
	if custom == nil || custom == DefaultRegistry {
		t.Error("custom registerer should produce a fresh registry")
	}

	// Resolving the same registerer twice must reuse the instance, or
	// the second component would hit duplicate collector registration.
	again := Config{Enabled: true, Registry: reg}.Resolve()
	if again != custom {
		t.Error("same registerer should resolve to the same registry")
	}
}
