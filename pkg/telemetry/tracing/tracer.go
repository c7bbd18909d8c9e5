package tracing

import (
	"context"
	"errors"
	"fmt"

	"mercator-hq/modellint/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

const instrumentationName = "mercator-hq/modellint"

// Span names. Every run has one run span with one child per locale.
const (
	SpanRun    = "lint.run"
	SpanLocale = "lint.locale"
)

// Tracer creates lint spans. The zero value is not usable; use New,
// NewWithExporter or Noop.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider // nil when disabled
}

// New returns a Tracer that exports over OTLP gRPC to cfg.Endpoint, or a
// no-op Tracer when tracing is disabled. Call Shutdown before exit to flush
// buffered spans.
func New(cfg *config.TracingConfig, version string) (*Tracer, error) {
	if cfg == nil {
		return nil, errors.New("tracing config is nil")
	}
	if !cfg.Enabled {
		return Noop(), nil
	}

	exporter, err := newOTLPExporter(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithExporter(cfg, version, exporter)
}

// NewWithExporter returns an enabled Tracer batching spans into exporter.
// The provider is also installed as the global otel provider.
func NewWithExporter(cfg *config.TracingConfig, version string, exporter sdktrace.SpanExporter) (*Tracer, error) {
	if cfg == nil {
		return nil, errors.New("tracing config is nil")
	}

	sampler, err := newSampler(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid tracing sampler: %w", err)
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to describe tracing resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return &Tracer{
		tracer:   provider.Tracer(instrumentationName),
		provider: provider,
	}, nil
}

// Noop returns a Tracer whose spans are never recorded.
func Noop() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}
}

// Enabled reports whether spans are exported.
func (t *Tracer) Enabled() bool {
	return t.provider != nil
}

// Start starts a span named name as a child of the span in ctx.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// StartRun starts the root span of a lint run.
//
//	ctx, span := tracer.StartRun(ctx, tracing.RunInfo{ID: id, ModelsDir: dir, Locales: locales})
//	defer span.End()
func (t *Tracer) StartRun(ctx context.Context, run RunInfo) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanRun, trace.WithAttributes(run.attributes()...))
}

// StartLocale starts the span of one locale inside a run.
func (t *Tracer) StartLocale(ctx context.Context, locale, file string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanLocale, trace.WithAttributes(localeAttributes(locale, file)...))
}

// Flush exports every finished span without stopping the tracer.
func (t *Tracer) Flush(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.ForceFlush(ctx)
}

// Shutdown flushes pending spans and releases the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

func newOTLPExporter(cfg *config.TracingConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, otlptracegrpc.WithTimeout(cfg.Timeout))
	}

	exporter, err := otlptrace.New(context.Background(), otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter for %s: %w", cfg.Endpoint, err)
	}
	return exporter, nil
}

// TraceID returns the trace ID of the span in ctx, or "" outside a
// sampled span.
func TraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
