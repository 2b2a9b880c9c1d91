// Package metrics provides the centralized Prometheus metrics reference
// for the help-center export. All metrics are defined in their respective
// packages (client, cache, export) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the exporter.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - hc_export_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - hc_export_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - hc_export_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//   - hc_export_rate_limit_cooldown_seconds (Histogram): Server-requested cool-down durations
//
// Retry Metrics (pkg/client):
//   - hc_export_retries_total{error_class} (Counter): Retry attempts by error class
//   - hc_export_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - hc_export_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Cache Metrics (pkg/cache):
//   - hc_export_cache_hits_total{layer} (Counter): Cache hits by layer
//   - hc_export_cache_misses_total (Counter): Cache misses
//   - hc_export_cache_errors_total{operation} (Counter): Cache operation errors
//   - hc_export_cache_written_bytes_total{layer} (Counter): Bytes written to the cache
//
// Pipeline Metrics (internal/export):
//   - hc_export_articles_processed_total (Counter): Articles fully exported
//   - hc_export_articles_skipped_total{reason} (Counter): Articles skipped (filtered, error)
//   - hc_export_records_total (Counter): Per-locale article records written
//   - hc_export_chunks_total (Counter): Chunk records written
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(hc_export_cache_hits_total[5m])) /
//   (sum(rate(hc_export_cache_hits_total[5m])) + sum(rate(hc_export_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(hc_export_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(hc_export_request_duration_seconds_bucket[5m]))
