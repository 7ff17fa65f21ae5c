// Package tracing provides OpenTelemetry tracing integration.
//
// InitTracer installs an SDK tracer provider with a parent-based ratio sampler
// and the W3C trace context propagator. Middleware opens a server span per HTTP
// request and returns the trace id in the X-Trace-Id header. The article
// usecase opens child spans through StartSpan.
//
// Example usage:
//
//	import "blog-api/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitTracer(tracing.Config{ServiceName: "blog-api", SampleRatio: 1})
//	    defer func() { _ = shutdown(context.Background()) }()
//	}
//
//	func publish(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "article.update")
//	    defer span.End()
//	}
package tracing
