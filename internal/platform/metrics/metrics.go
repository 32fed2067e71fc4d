// Package metrics defines the Prometheus collectors of the service and the
// handler that exposes them.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	StatsQueryDuration   *prometheus.HistogramVec
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	EventsStoredTotal    *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a dedicated registry
// together with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		StatsQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "website_stats_query_duration_seconds",
				Help:    "Website stats query latency in seconds by period (current, previous).",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"period"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "website_stats_cache_hits_total",
				Help: "Total number of stats cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "website_stats_cache_misses_total",
				Help: "Total number of stats cache misses.",
			},
		),
		EventsStoredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "website_events_stored_total",
				Help: "Total collected website events by result (created, duplicate).",
			},
			[]string{"result"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.StatsQueryDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.EventsStoredTotal,
	)

	return m
}

// ObserveStatsQuery records the latency of one period query.
func (m *Metrics) ObserveStatsQuery(period string, elapsed time.Duration) {
	m.StatsQueryDuration.WithLabelValues(period).Observe(elapsed.Seconds())
}

func (m *Metrics) CacheHit() {
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) CacheMiss() {
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) EventStored(created bool) {
	if created {
		m.EventsStoredTotal.WithLabelValues("created").Inc()
		return
	}
	m.EventsStoredTotal.WithLabelValues("duplicate").Inc()
}

// Handler returns the Prometheus scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
