// Package tracing installs an OpenTelemetry tracer provider when an OTLP
// endpoint is configured. Without one the global no-op provider stays in
// place and otelhttp instrumentation records nothing.
package tracing

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// ServiceName identifies this process in exported spans.
const ServiceName = "sercha-connect"

// Endpoint returns the configured OTLP traces endpoint, if any.
func Endpoint(settings driven.Settings) string {
	if endpoint := settings.Get("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return settings.Get("OTEL_EXPORTER_OTLP_ENDPOINT")
}

// Setup installs a batching OTLP/HTTP tracer provider when an endpoint is set.
// The returned shutdown func flushes spans; it is a no-op when tracing is off.
func Setup(ctx context.Context, settings driven.Settings) (func(context.Context) error, error) {
	endpoint := Endpoint(settings)
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	if strings.HasPrefix(strings.ToLower(endpoint), "http://") {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("creating trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp), sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown, nil
}
