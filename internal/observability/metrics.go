// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the SDK. Everything is injected — no global registries, no
// global tracer provider — and optional: components treat a nil collector
// or tracer setup as a no-op.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector holds all Prometheus metrics on a private registry.
type MetricsCollector struct {
	Registry *prometheus.Registry

	// Credential resolution metrics.
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram

	// OAuth token metrics.
	TokenRequestsTotal *prometheus.CounterVec

	// Outbound HTTP metrics.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetricsCollector creates a MetricsCollector with all metrics
// registered on a fresh registry.
func NewMetricsCollector() *MetricsCollector {
	reg := prometheus.NewRegistry()

	m := &MetricsCollector{
		Registry: reg,

		ResolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paycore",
			Subsystem: "credential",
			Name:      "resolutions_total",
			Help:      "Total credential resolutions by outcome and variant.",
		}, []string{"outcome", "kind"}),

		ResolutionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "paycore",
			Subsystem: "credential",
			Name:      "resolution_duration_seconds",
			Help:      "Credential resolution duration in seconds.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),

		TokenRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paycore",
			Subsystem: "oauth",
			Name:      "token_requests_total",
			Help:      "Total OAuth token endpoint requests by status.",
		}, []string{"status"}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paycore",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total outbound HTTP attempts by method and status.",
		}, []string{"method", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paycore",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Outbound HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(
		m.ResolutionsTotal,
		m.ResolutionDuration,
		m.TokenRequestsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}
