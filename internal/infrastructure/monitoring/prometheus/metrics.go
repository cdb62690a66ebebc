// Package prometheus exposes the application metrics for prazojus.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every metric the engine and its HTTP surface emit.  A single
// instance is created at startup and injected where needed; tests construct
// their own instance backed by a fresh registry so collectors never collide.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Deadline engine
	DeadlinesComputedTotal  prometheus.Counter
	DeadlineComputeDuration prometheus.Histogram
	HolidayFetchesTotal     prometheus.Counter

	// Memoization cache
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
	CacheEvictions   prometheus.Counter
}

var defaultDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// NewMetrics registers all application metrics on a private registry and
// returns the populated Metrics struct.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration",
		Buckets: defaultDurationBuckets,
	}, []string{"method", "path"})

	m.DeadlinesComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deadlines_computed_total",
		Help: "Deadline computations performed",
	})

	m.DeadlineComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "deadline_compute_duration_seconds",
		Help:    "Duration of a full DJE deadline computation",
		Buckets: defaultDurationBuckets,
	})

	m.HolidayFetchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "holiday_store_fetches_total",
		Help: "Range queries issued to the holiday store",
	})

	m.CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "holiday_cache_hits_total",
		Help: "Applicable-holiday cache hits",
	})

	m.CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "holiday_cache_misses_total",
		Help: "Applicable-holiday cache misses",
	})

	m.CacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "holiday_cache_evictions_total",
		Help: "Applicable-holiday cache LRU evictions",
	})

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DeadlinesComputedTotal,
		m.DeadlineComputeDuration,
		m.HolidayFetchesTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CacheEvictions,
	)

	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
