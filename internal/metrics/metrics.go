// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Location read cache, labelled hit or miss
	CacheLookupsTotal *prometheus.CounterVec

	// Dual-write outcomes per entity: ok, partial, create_failed
	DualWriteTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all collectors on registry, together
// with the Go runtime and process collectors.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glassview_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "glassview_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glassview_cache_lookups_total",
				Help: "Location read cache lookups by result",
			},
			[]string{"result"},
		),
		DualWriteTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glassview_dual_write_total",
				Help: "Dual-write create outcomes by entity",
			},
			[]string{"entity", "outcome"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CacheLookupsTotal,
		m.DualWriteTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDualWrite counts one create outcome.
func (m *Metrics) ObserveDualWrite(entity, outcome string) {
	m.DualWriteTotal.WithLabelValues(entity, outcome).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
