// Package metrics exposes Prometheus collectors for the HTTP layer and the
// catalog's business events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

// Metrics owns a private registry so that several instances (one per test)
// never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	BooksCreatedTotal   prometheus.Counter
	BooksDeletedTotal   prometheus.Counter
	PricesAdjustedTotal prometheus.Counter
	CacheLookupsTotal   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "HTTP requests currently being served.",
		}),

		BooksCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "books_created_total",
			Help:      "Books added to the catalog.",
		}),

		BooksDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "books_deleted_total",
			Help:      "Books removed, directly or through an author/publisher cascade.",
		}),

		PricesAdjustedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prices_adjusted_total",
			Help:      "Book prices rewritten by bulk adjustments.",
		}),

		CacheLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "ISBN cache lookups by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInProgress,
		m.BooksCreatedTotal,
		m.BooksDeletedTotal,
		m.PricesAdjustedTotal,
		m.CacheLookupsTotal,
	)
	return m
}

// Registry returns the registry backing these collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records count, latency and concurrency of every request.
// Unmatched routes are grouped under a single label to bound cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPRequestsInProgress.Inc()
		defer m.HTTPRequestsInProgress.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) BookCreated() {
	m.BooksCreatedTotal.Inc()
}

func (m *Metrics) BooksDeleted(n int) {
	if n > 0 {
		m.BooksDeletedTotal.Add(float64(n))
	}
}

func (m *Metrics) PricesAdjusted(n int) {
	if n > 0 {
		m.PricesAdjustedTotal.Add(float64(n))
	}
}

func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}
