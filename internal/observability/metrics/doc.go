// Package metrics holds the Prometheus collectors of the blog API.
//
// Collectors register with the default registry through promauto and are
// served by the /metrics endpoint. Callers use the Record* and Update*
// helpers rather than touching the collectors:
//
//	metrics.RecordArticleOperation("update", metrics.ResultForbidden)
//	metrics.RecordDBQuery("select", time.Since(start))
package metrics
