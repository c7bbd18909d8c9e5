// Package telemetry groups the observability packages of the model linter.
//
// # Components
//
//   - logging: structured slog logging with run, locale and file context
//   - metrics: Prometheus counters and histograms for runs, locales and findings
//   - tracing: OpenTelemetry spans per lint run and per locale
//   - health: liveness, readiness and version endpoints for watch mode
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "text"})
//	if err != nil {
//		return err
//	}
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(ctx)
//
//	runner, err := linter.NewRunner(cfg,
//		linter.WithLogger(logger),
//		linter.WithMetrics(collector),
//		linter.WithTracer(tracer),
//	)
//
// Every component has a no-op form (logging.Discard, tracing.Noop, a
// collector with metrics disabled) so the linter runs without telemetry.
package telemetry
