// Package metrics exposes Prometheus collectors for observability:
// HTTP request volume/latency and count-synchronization drift signals.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pressadmin"

var (
	// HTTPRequestsTotal tracks request volume by method, route pattern,
	// and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// CountSyncFailures counts post-count deltas that failed after a
	// durable post write. Every increment here means a counter has
	// drifted from source truth until the next reconciliation.
	CountSyncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "counts",
			Name:      "sync_failures_total",
			Help:      "Post-count increments/decrements that failed after a post write",
		},
		[]string{"registry", "op"},
	)

	// CountClampedDecrements counts decrements attempted on a counter
	// already at zero, a signal of pre-existing drift.
	CountClampedDecrements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "counts",
			Name:      "clamped_decrements_total",
			Help:      "Post-count decrements clamped at zero",
		},
		[]string{"registry"},
	)

	// CountReconciled counts counters repaired by reconciliation.
	CountReconciled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "counts",
			Name:      "reconciled_total",
			Help:      "Post counters repaired by reconciliation",
		},
		[]string{"registry"},
	)
)
