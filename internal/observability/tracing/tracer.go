package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the blog API.
var tracer = otel.Tracer("blog-api")

// Config controls the tracer provider installed by InitTracer.
type Config struct {
	ServiceName string
	// SampleRatio is the fraction of root spans sampled (0..1). Child spans follow their parent.
	SampleRatio float64
	// Processors receive finished spans. Without processors spans are sampled and
	// propagated but not exported.
	Processors []sdktrace.SpanProcessor
}

// InitTracer installs an SDK tracer provider and the W3C trace context propagator
// as the global OpenTelemetry providers. The returned function flushes and shuts
// the provider down.
//
// Example usage:
//
//	shutdown := tracing.InitTracer(tracing.Config{ServiceName: "blog-api", SampleRatio: 1})
//	defer func() { _ = shutdown(context.Background()) }()
func InitTracer(cfg Config) func(context.Context) error {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "blog-api"
	}
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	}
	for _, p := range cfg.Processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	tracer = tp.Tracer(cfg.ServiceName)

	return tp.Shutdown
}

// GetTracer returns the global tracer for creating spans.
// This tracer can be used throughout the application to create new spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// StartSpan starts an internal span with the given attributes.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
