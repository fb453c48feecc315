package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.StoreLoadsTotal == nil {
		t.Error("StoreLoadsTotal not initialized")
	}
	if r.StoreLoadDuration == nil {
		t.Error("StoreLoadDuration not initialized")
	}
	if r.StoreEntries == nil {
		t.Error("StoreEntries not initialized")
	}
	if r.StoreLookupsTotal == nil {
		t.Error("StoreLookupsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordLoad(t *testing.T) {
	r := NewRegistry()

	r.RecordLoad("targets", "success", 2*time.Millisecond)
	r.RecordLoad("targets", "success", 3*time.Millisecond)
	r.RecordLoad("targets", "truncated", time.Millisecond)

	if got := counterValue(t, r.StoreLoadsTotal.WithLabelValues("targets", "success")); got != 2 {
		t.Errorf("success loads = %v, want 2", got)
	}
	if got := counterValue(t, r.StoreLoadsTotal.WithLabelValues("targets", "truncated")); got != 1 {
		t.Errorf("truncated loads = %v, want 1", got)
	}

	observer, err := r.StoreLoadDuration.GetMetricWithLabelValues("targets")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}
	var metric dto.Metric
	if err := observer.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("histogram samples = %d, want 3", metric.Histogram.GetSampleCount())
	}
}

func TestRecordLookup(t *testing.T) {
	r := NewRegistry()

	r.RecordLookup("paths", true)
	r.RecordLookup("paths", false)
	r.RecordLookup("paths", false)

	if got := counterValue(t, r.StoreLookupsTotal.WithLabelValues("paths", "hit")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := counterValue(t, r.StoreLookupsTotal.WithLabelValues("paths", "miss")); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
}

func TestRecordFlushAndCorruption(t *testing.T) {
	r := NewRegistry()

	r.RecordFlush("targets", "success")
	r.RecordFlush("targets", "error")
	r.RecordCorruption("targets", "truncated")

	if got := counterValue(t, r.StoreFlushesTotal.WithLabelValues("targets", "success")); got != 1 {
		t.Errorf("flushes = %v, want 1", got)
	}
	if got := counterValue(t, r.StoreCorruptedTotal.WithLabelValues("targets", "truncated")); got != 1 {
		t.Errorf("corruptions = %v, want 1", got)
	}
}

func TestSetStoreSize(t *testing.T) {
	r := NewRegistry()

	r.SetStoreSize("paths", 10, 96)
	r.SetStoreSize("paths", 12, 112)

	if got := gaugeValue(t, r.StoreEntries.WithLabelValues("paths")); got != 12 {
		t.Errorf("entries = %v, want 12", got)
	}
	if got := gaugeValue(t, r.StoreBytes.WithLabelValues("paths")); got != 112 {
		t.Errorf("bytes = %v, want 112", got)
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	r.RecordLoad("targets", "success", time.Millisecond)
	r.SetStoreSize("targets", 1, 4888)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	names := make(map[string]bool)
	for _, m := range families {
		names[m.GetName()] = true
	}

	for _, expected := range []string{
		"launcher_store_loads_total",
		"launcher_store_load_duration_seconds",
		"launcher_store_entries",
		"launcher_store_bytes",
	} {
		if !names[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	r.RecordLoad("a", "success", 0)
	r.RecordFlush("a", "success")
	r.RecordLookup("a", true)
	r.RecordCorruption("a", "format")
	r.SetStoreSize("a", 0, 0)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	for _, m := range families {
		if !strings.HasPrefix(m.GetName(), "launcher_store_") {
			t.Errorf("metric %s lacks launcher_store_ prefix", m.GetName())
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.RecordLookup("targets", j%2 == 0)
			}
		}()
	}
	wg.Wait()

	hits := counterValue(t, r.StoreLookupsTotal.WithLabelValues("targets", "hit"))
	misses := counterValue(t, r.StoreLookupsTotal.WithLabelValues("targets", "miss"))
	if hits+misses != 800 {
		t.Errorf("hits+misses = %v, want 800", hits+misses)
	}
}

func BenchmarkRecordLookup(b *testing.B) {
	r := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordLookup("targets", i%2 == 0)
	}
}
