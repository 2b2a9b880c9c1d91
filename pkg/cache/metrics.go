package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for cache operations.
var (
	// CacheHits counts cache hits by layer.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hc_export_cache_hits_total",
		Help: "Total cache hits by layer",
	}, []string{"layer"})

	// CacheMisses counts cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hc_export_cache_misses_total",
		Help: "Total cache misses",
	})

	// CacheErrors counts cache operation errors.
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hc_export_cache_errors_total",
		Help: "Total cache operation errors by operation",
	}, []string{"operation"})

	// CacheSize tracks bytes written to the cache.
	CacheSize = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hc_export_cache_written_bytes_total",
		Help: "Total bytes written to the cache by layer",
	}, []string{"layer"})
)
