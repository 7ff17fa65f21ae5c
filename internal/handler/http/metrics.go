package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blog-api/internal/handler/http/pathutil"
	"blog-api/internal/handler/http/responsewriter"
	"blog-api/internal/observability/metrics"
	"blog-api/internal/observability/slo"
)

// MetricsMiddleware feeds the http_* collectors and the SLO window. Paths are
// reduced to route labels first, so /api/v1/articles/123 and /api/v1/articles/9
// share one series.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		route := pathutil.NormalizePath(r.URL.Path)
		rw := responsewriter.Wrap(w)
		start := time.Now()

		next.ServeHTTP(rw, r)

		code := rw.StatusCode()
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(code), time.Since(start),
			int(r.ContentLength), rw.BytesWritten())
		slo.Default.Observe(code)
	})
}

// MetricsHandler serves the default registry, in OpenMetrics format when the
// scraper asks for it.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
