package metrics

import (
	"time"
)

// Article operation results.
const (
	ResultSuccess         = "success"
	ResultInvalid         = "invalid"
	ResultNotFound        = "not_found"
	ResultForbidden       = "forbidden"
	ResultUnauthenticated = "unauthenticated"
	ResultError           = "error"
)

// RecordArticleOperation records the outcome of an article usecase call.
// Operation is the usecase method, e.g. "create" or "list_published".
func RecordArticleOperation(operation, result string) {
	ArticleOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordArticlePublished records a transition into the published state.
func RecordArticlePublished() {
	ArticlePublicationsTotal.Inc()
}

// UpdateArticlesTotal sets the per-status article gauges.
// This gauge should be updated periodically to reflect the current state.
func UpdateArticlesTotal(counts map[string]int64) {
	for status, n := range counts {
		ArticlesTotal.WithLabelValues(status).Set(float64(n))
	}
}

// RecordSessionsPurged records the number of expired sessions removed.
func RecordSessionsPurged(n int64) {
	if n > 0 {
		SessionsPurgedTotal.Add(float64(n))
	}
}

// RecordCircuitBreakerState records the current state of a named breaker.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_articles", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
