// Package metrics registers the Prometheus instruments for the service.
// A single Metrics value is created in main and handed to every component
// that records; promauto registers with the default registry, which the
// /metrics endpoint exposes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CalcOperations *prometheus.CounterVec
	CalcDuration   *prometheus.HistogramVec

	HTTPRequestDuration *prometheus.HistogramVec

	RateLimitDecisions *prometheus.CounterVec
	RateLimitFailOpen  prometheus.Counter

	UsageEmitted prometheus.Counter
	UsageDropped prometheus.Counter

	ZoneLookups *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		CalcOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tempus_calc_operations_total",
			Help: "Calendrical operations by kind, chronology and outcome.",
		}, []string{"operation", "chronology", "outcome"}),
		CalcDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tempus_calc_duration_seconds",
			Help:    "Latency of calendrical operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tempus_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		RateLimitDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tempus_ratelimit_decisions_total",
			Help: "Rate limit decisions by endpoint class and verdict.",
		}, []string{"class", "verdict"}),
		RateLimitFailOpen: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tempus_ratelimit_fail_open_total",
			Help: "Requests admitted because the limiter backend errored.",
		}),
		UsageEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tempus_usage_events_emitted_total",
			Help: "Usage events accepted by the publisher.",
		}),
		UsageDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tempus_usage_events_dropped_total",
			Help: "Usage events dropped because the async buffer was full.",
		}),
		ZoneLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tempus_zone_lookups_total",
			Help: "Zone resolver lookups by source.",
		}, []string{"source"}),
	}
}

// ObserveCalc records one calendrical operation.
func (m *Metrics) ObserveCalc(operation, chronology, outcome string, seconds float64) {
	m.CalcOperations.WithLabelValues(operation, chronology, outcome).Inc()
	m.CalcDuration.WithLabelValues(operation).Observe(seconds)
}

// IncRateLimit records one limiter verdict.
func (m *Metrics) IncRateLimit(class, verdict string) {
	m.RateLimitDecisions.WithLabelValues(class, verdict).Inc()
}

// IncZoneLookup records one resolver lookup.
func (m *Metrics) IncZoneLookup(source string) {
	m.ZoneLookups.WithLabelValues(source).Inc()
}
