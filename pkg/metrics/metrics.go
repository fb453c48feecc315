package metrics

import (
	"time"
)

// RecordLoad records a store load with its outcome
func (r *Registry) RecordLoad(store, status string, duration time.Duration) {
	r.StoreLoadsTotal.WithLabelValues(store, status).Inc()
	r.StoreLoadDuration.WithLabelValues(store).Observe(duration.Seconds())
}

// RecordFlush records a store write-back
func (r *Registry) RecordFlush(store, status string) {
	r.StoreFlushesTotal.WithLabelValues(store, status).Inc()
}

// RecordLookup counts a lookup as a hit or a miss
func (r *Registry) RecordLookup(store string, found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	r.StoreLookupsTotal.WithLabelValues(store, result).Inc()
}

// RecordCorruption counts a load rejected for the given reason
func (r *Registry) RecordCorruption(store, reason string) {
	r.StoreCorruptedTotal.WithLabelValues(store, reason).Inc()
}

// SetStoreSize updates the entry and byte gauges of a store
func (r *Registry) SetStoreSize(store string, entries int, bytes int64) {
	r.StoreEntries.WithLabelValues(store).Set(float64(entries))
	r.StoreBytes.WithLabelValues(store).Set(float64(bytes))
}
