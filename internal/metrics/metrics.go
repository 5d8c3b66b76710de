package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all the Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Query cache metrics
	CacheHitsTotal     *prometheus.CounterVec
	CacheMissesTotal   *prometheus.CounterVec
	CacheStaleServed   *prometheus.CounterVec
	CacheFetchDuration *prometheus.HistogramVec

	// Admin query metrics
	AdminQueriesTotal  *prometheus.CounterVec
	PrefetchRunsTotal  *prometheus.CounterVec
	ScopeEmptyShortcut *prometheus.CounterVec

	// Visitor tracking metrics
	TrackingRequestsTotal *prometheus.CounterVec

	// NATS metrics
	NATSMessagesPublished *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics on the default
// registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all metrics against the given registerer. Tests
// pass a fresh registry to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admin_cache_hits_total",
				Help: "Total number of fresh cache hits per resource",
			},
			[]string{"resource"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admin_cache_misses_total",
				Help: "Total number of cache misses per resource",
			},
			[]string{"resource"},
		),
		CacheStaleServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admin_cache_stale_served_total",
				Help: "Total number of stale cache entries served while disabled",
			},
			[]string{"resource"},
		),
		CacheFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "admin_cache_fetch_duration_seconds",
				Help:    "Duration of backend fetches triggered by cache misses",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
		AdminQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admin_queries_total",
				Help: "Total number of admin queries per resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		PrefetchRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admin_prefetch_runs_total",
				Help: "Total number of prefetch aggregator runs per outcome",
			},
			[]string{"outcome"},
		),
		ScopeEmptyShortcut: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admin_scope_empty_shortcut_total",
				Help: "Queries answered empty without a backend call due to empty scope",
			},
			[]string{"resource"},
		),
		TrackingRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visitor_tracking_requests_total",
				Help: "Total number of visitor tracking requests per outcome",
			},
			[]string{"outcome"},
		),
		NATSMessagesPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nats_messages_published_total",
				Help: "Total number of NATS messages published",
			},
			[]string{"subject"},
		),
	}
}

// GinMiddleware returns a gin middleware recording HTTP metrics
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()

		c.Next()

		m.HTTPRequestsInFlight.Dec()
		duration := time.Since(start).Seconds()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}
