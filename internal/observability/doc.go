// Package observability is the parent of the telemetry packages used by the
// API server and the worker:
//
//   - logging: slog setup from LOG_LEVEL/LOG_FORMAT and per-request loggers
//     carrying request_id and trace_id
//   - metrics: Prometheus collectors for HTTP traffic, article lifecycle,
//     session purges, DB queries and the circuit breaker
//   - slo: rolling availability and error-rate gauges fed by the HTTP layer
//   - tracing: OpenTelemetry provider, server spans and child span helpers
//
// Wiring lives in cmd/api and cmd/worker; this package holds no code.
package observability
