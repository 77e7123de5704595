package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_http_requests_total",
			Help: "Total number of HTTP requests by method and status code",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// DispatchOperations counts dispatched API operations by outcome
	// ("success" or the lower-cased error code).
	DispatchOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_dispatch_operations_total",
			Help: "Total number of dispatched API operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	StoreRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "analytics_store_records",
			Help: "Current number of records per collection",
		},
		[]string{"collection"},
	)
)

// RecordStoreCounts publishes per-collection record counts.
func RecordStoreCounts(counts map[string]int) {
	for collection, n := range counts {
		StoreRecords.WithLabelValues(collection).Set(float64(n))
	}
}
