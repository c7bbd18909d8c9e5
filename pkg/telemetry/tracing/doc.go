// Package tracing records lint runs as OpenTelemetry spans.
//
// A run produces one "lint.run" span with a "lint.locale" child per locale,
// exported over OTLP gRPC. Samplers: always, never, ratio. Locale spans
// follow the sampling decision of their run.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, run := tracer.StartRun(ctx, tracing.RunInfo{ID: runID, ModelsDir: dir, Locales: locales})
//	defer run.End()
//
//	_, span := tracer.StartLocale(ctx, "de", "models/de.json")
//	tracing.EndLocale(span, len(findings))
//	span.End()
//
// With tracing disabled New returns a no-op Tracer.
package tracing
