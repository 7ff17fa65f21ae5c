package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// sizeBuckets spans 100B..1GB; article payloads sit in the low end.
var sizeBuckets = prometheus.ExponentialBuckets(100, 10, 8)

/* ───────── HTTP ───────── */

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method, route template and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Time spent serving HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_size_bytes",
		Help:    "Declared request body size.",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	HTTPResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "Response body bytes written.",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	// ActiveConnections counts requests currently inside the handler chain.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_active_connections",
		Help: "Requests currently being served.",
	})

	// RateLimitedTotal counts requests refused with 429.
	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the per-client rate limiter, by route template.",
	}, []string{"path"})
)

/* ───────── 記事・セッション ───────── */

var (
	ArticlesTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "articles_total",
		Help: "Stored articles by status (draft, published).",
	}, []string{"status"})

	// ArticleOperationsTotal result is one of the Result* constants.
	ArticleOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "article_operations_total",
		Help: "Article usecase calls by operation and outcome.",
	}, []string{"operation", "result"})

	ArticlePublicationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "article_publications_total",
		Help: "Articles that entered the published state, on create or update.",
	})

	SessionsPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_purged_total",
		Help: "Expired sessions deleted by the worker.",
	})
)

/* ───────── DB ───────── */

var (
	// CircuitBreakerState mirrors gobreaker.State: 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open).",
	}, []string{"name"})

	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Database round trips by statement kind.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"operation"})

	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_active",
		Help: "Pool connections in use.",
	})

	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_idle",
		Help: "Pool connections idle.",
	})
)

// RecordHTTPRequest records one served request. Sizes of zero or less are
// not observed.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordRateLimited records a 429 on the given route template.
func RecordRateLimited(path string) {
	RateLimitedTotal.WithLabelValues(path).Inc()
}
