// Package observability sets up OpenTelemetry tracing. Spans come from otelchi
// on inbound requests and otelhttp on calls to the NLP server and the
// completion service.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/internal"
)

var log = internal.GetLogger()

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// SetupTracing installs a global tracer provider exporting over OTLP/HTTP when
// otel.enabled is set. Otherwise the global no-op provider stays in place.
func SetupTracing(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	if !cfg.OTel.Enabled {
		return noopShutdown, nil
	}

	exporter, err := newExporter(ctx, cfg.OTel)
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", cfg.OTel.ServiceName),
			attribute.String("service.version", config.VersionString),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Infof("exporting traces to %s", cfg.OTel.Endpoint)

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg config.OTelConfig) (*otlptrace.Exporter, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}
