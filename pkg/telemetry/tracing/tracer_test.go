package tracing

import (
	"context"
	"errors"
	"testing"

	"mercator-hq/modellint/pkg/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T, sampler string) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := NewWithExporter(&config.TracingConfig{
		Enabled:     true,
		Sampler:     sampler,
		SampleRatio: 1.0,
		Endpoint:    "localhost:4317",
		ServiceName: "modellint-test",
	}, "test", exporter)
	if err != nil {
		t.Fatalf("NewWithExporter() error = %v", err)
	}
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, exporter
}

func hasAttribute(span tracetest.SpanStub, want attribute.KeyValue) bool {
	for _, attr := range span.Attributes {
		if attr == want {
			return true
		}
	}
	return false
}

func TestNew(t *testing.T) {
	if _, err := New(nil, "test"); err == nil {
		t.Error("expected error for nil config")
	}

	tracer, err := New(&config.TracingConfig{Enabled: false}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tracer.Enabled() {
		t.Error("disabled config produced an enabled tracer")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewWithExporter_InvalidSampler(t *testing.T) {
	cfg := &config.TracingConfig{Enabled: true, Sampler: "sometimes"}
	if _, err := NewWithExporter(cfg, "test", tracetest.NewInMemoryExporter()); err == nil {
		t.Fatal("expected error for unknown sampler")
	}
}

func TestTracer_RunAndLocaleSpans(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerAlways)
	if !tracer.Enabled() {
		t.Fatal("expected an enabled tracer")
	}

	ctx, run := tracer.StartRun(context.Background(), RunInfo{
		ID:        "run-1",
		ModelsDir: "models",
		Locales:   []string{"de", "en"},
	})
	if TraceID(ctx) == "" {
		t.Error("expected a trace ID inside a sampled span")
	}

	_, locale := tracer.StartLocale(ctx, "de", "models/de.json")
	EndLocale(locale, 3)
	locale.End()

	EndRun(run, 3, 0)
	run.End()

	if err := tracer.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	localeSpan, runSpan := spans[0], spans[1]
	if localeSpan.Name != SpanLocale || runSpan.Name != SpanRun {
		t.Fatalf("unexpected span order: %s, %s", localeSpan.Name, runSpan.Name)
	}
	if localeSpan.Parent.SpanID() != runSpan.SpanContext.SpanID() {
		t.Error("locale span is not a child of the run span")
	}
	if localeSpan.Status.Code != codes.Ok || runSpan.Status.Code != codes.Ok {
		t.Errorf("statuses = %v, %v, want Ok", localeSpan.Status.Code, runSpan.Status.Code)
	}

	for _, want := range []attribute.KeyValue{
		attribute.String(AttrLocale, "de"),
		attribute.Int(AttrFindings, 3),
	} {
		if !hasAttribute(localeSpan, want) {
			t.Errorf("locale span missing %v", want)
		}
	}
	for _, want := range []attribute.KeyValue{
		attribute.String(AttrRunID, "run-1"),
		attribute.Int(AttrWarnings, 3),
	} {
		if !hasAttribute(runSpan, want) {
			t.Errorf("run span missing %v", want)
		}
	}
	for _, attr := range runSpan.Attributes {
		if attr.Key == AttrRevision {
			t.Error("empty revision should not be recorded")
		}
	}
}

func TestTracer_NeverSampler(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerNever)

	ctx, run := tracer.StartRun(context.Background(), RunInfo{ID: "run-1"})
	_, locale := tracer.StartLocale(ctx, "de", "models/de.json")
	locale.End()
	run.End()
	_ = tracer.Flush(context.Background())

	if n := len(exporter.GetSpans()); n != 0 {
		t.Errorf("expected no exported spans, got %d", n)
	}
}

func TestFail(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerAlways)

	_, span := tracer.StartLocale(context.Background(), "fr", "models/fr.json")
	Fail(span, "structural", nil)
	Fail(span, "structural", errors.New("model has no 'intents'"))
	span.End()
	_ = tracer.Flush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status.Code)
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected one recorded error event, got %d", len(spans[0].Events))
	}
	if !hasAttribute(spans[0], attribute.String(AttrErrorType, "structural")) {
		t.Error("missing error type attribute")
	}
}

func TestNoop(t *testing.T) {
	tracer := Noop()
	ctx, span := tracer.StartRun(context.Background(), RunInfo{ID: "run-1"})
	defer span.End()

	if TraceID(ctx) != "" {
		t.Error("noop spans should not carry a trace ID")
	}
	if tracer.Enabled() {
		t.Error("noop tracer reports enabled")
	}
	if err := tracer.Flush(context.Background()); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
}
