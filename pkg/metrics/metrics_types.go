package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the record-store metrics of one process
type Registry struct {
	StoreLoadsTotal     *prometheus.CounterVec
	StoreLoadDuration   *prometheus.HistogramVec
	StoreEntries        *prometheus.GaugeVec
	StoreBytes          *prometheus.GaugeVec
	StoreFlushesTotal   *prometheus.CounterVec
	StoreLookupsTotal   *prometheus.CounterVec
	StoreCorruptedTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initStoreMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
