package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStoreMetrics() {
	r.StoreLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcher_store_loads_total",
			Help: "Total number of store file loads",
		},
		[]string{"store", "status"},
	)

	r.StoreLoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "launcher_store_load_duration_seconds",
			Help:    "Time spent reading and decoding a store file",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"store"},
	)

	r.StoreEntries = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "launcher_store_entries",
			Help: "Number of records currently held by a store",
		},
		[]string{"store"},
	)

	r.StoreBytes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "launcher_store_bytes",
			Help: "Encoded size of a store, header included, after the last load or flush",
		},
		[]string{"store"},
	)

	r.StoreFlushesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcher_store_flushes_total",
			Help: "Total number of store write-backs",
		},
		[]string{"store", "status"},
	)

	r.StoreLookupsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcher_store_lookups_total",
			Help: "Total number of record lookups by outcome",
		},
		[]string{"store", "result"},
	)

	r.StoreCorruptedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcher_store_corrupted_total",
			Help: "Loads rejected because the file was truncated or malformed",
		},
		[]string{"store", "reason"},
	)
}
