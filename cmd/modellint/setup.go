package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"mercator-hq/modellint/pkg/cli"
	"mercator-hq/modellint/pkg/config"
	"mercator-hq/modellint/pkg/history"
	"mercator-hq/modellint/pkg/history/retention"
	"mercator-hq/modellint/pkg/linter"
	"mercator-hq/modellint/pkg/telemetry/logging"
	"mercator-hq/modellint/pkg/telemetry/metrics"
	"mercator-hq/modellint/pkg/telemetry/tracing"

	"github.com/spf13/cobra"
)

// shutdownTimeout bounds flushing spans and closing the history store.
const shutdownTimeout = 5 * time.Second

// loadConfig loads the configuration file and applies the global flags.
// The result is not validated; commands validate after their own overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, cli.WrapConfigError("", fmt.Errorf("failed to load config: %w", err))
	}

	if o.logLevel != "" {
		cfg.Telemetry.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Telemetry.Logging.Format = o.logFormat
	}
	return cfg, nil
}

// validateConfig re-validates cfg after flag overrides.
func validateConfig(cfg *config.Config) error {
	if err := config.Validate(cfg); err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) && len(verr.Errors) == 1 {
			fe := verr.Errors[0]
			return cli.NewConfigError(fe.Field, fe.Message)
		}
		return cli.WrapConfigError("", err)
	}
	return nil
}

// commandContext returns the command context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// app bundles the collaborators shared by the lint and watch commands.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	store   history.Store
	pruner  *retention.Pruner
	runner  *linter.Runner
}

// newApp wires logging, metrics, tracing, history and the runner from cfg.
// Logs go to logOut. The caller must Close the app.
func newApp(cfg *config.Config, logOut io.Writer, opts ...linter.Option) (*app, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    logOut,
	})
	if err != nil {
		return nil, cli.WrapConfigError("telemetry.logging", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
	}

	a.tracer, err = tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if cfg.History.Enabled {
		a.store, err = history.Open(&cfg.History, logger.Slog())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		a.pruner = retention.NewPruner(a.store, retention.Policy{
			RetentionDays: cfg.History.RetentionDays,
			MaxRuns:       cfg.History.MaxRuns,
			Schedule:      cfg.History.PruneSchedule,
		}, logger.Slog())
	}

	runnerOpts := []linter.Option{
		linter.WithLogger(logger),
		linter.WithMetrics(a.metrics),
		linter.WithTracer(a.tracer),
	}
	if a.store != nil {
		runnerOpts = append(runnerOpts, linter.WithHistory(a.store, a.pruner))
	}
	runnerOpts = append(runnerOpts, opts...)

	a.runner, err = linter.NewRunner(cfg, runnerOpts...)
	if err != nil {
		a.Close()
		return nil, cli.WrapConfigError("lint.disabled_checks", err)
	}

	return a, nil
}

// writeMetrics exports metrics to the configured textfile.
func (a *app) writeMetrics() {
	if err := a.metrics.WriteTextfile(a.cfg.Telemetry.Metrics.Textfile); err != nil {
		a.logger.Error("failed to write metrics textfile", "error", err)
	}
}

// Close flushes spans and closes the history store.
func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.logger.Error("failed to shut down tracer", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("failed to close history", "error", err)
		}
	}
}
