package main

import (
	"context"
	"fmt"
	"time"

	"mercator-hq/modellint/pkg/cli"
	"mercator-hq/modellint/pkg/config"
	"mercator-hq/modellint/pkg/history/retention"
	"mercator-hq/modellint/pkg/telemetry/health"
	"mercator-hq/modellint/pkg/watch"

	"github.com/spf13/cobra"
)

type watchOptions struct {
	dir      string
	format   string
	debounce time.Duration
	schedule string
	listen   string
}

func newWatchCmd(root *rootOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-lint models whenever they change",
		Long: `Lint the models once, then again whenever a model file changes.

Rapid changes are debounced into a single run. With a schedule, the models
are also linted periodically. With a listen address, /metrics, /health,
/ready and /version are served while watching.

Examples:
  # Watch the configured models directory
  modellint watch

  # Also lint every hour and expose metrics
  modellint watch --schedule "0 * * * *" --listen 127.0.0.1:9464`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "models directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text, json, csv")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "wait this long for more changes before linting")
	cmd.Flags().StringVar(&opts.schedule, "schedule", "", "cron expression for periodic linting")
	cmd.Flags().StringVar(&opts.listen, "listen", "", "serve metrics and health endpoints on this address")

	return cmd
}

// apply overrides cfg with the flags that were set.
func (o *watchOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Models.Dir = o.dir
	}
	if flags.Changed("format") {
		cfg.Lint.Format = o.format
	}
	if flags.Changed("debounce") {
		cfg.Watch.Debounce = o.debounce
	}
	if flags.Changed("schedule") {
		cfg.Watch.Schedule = o.schedule
	}
	if flags.Changed("listen") {
		cfg.Telemetry.Metrics.ListenAddress = o.listen
	}
}

func runWatch(cmd *cobra.Command, root *rootOptions, opts *watchOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	opts.apply(cmd, cfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}

	format, err := cli.ParseFormat(cfg.Lint.Format)
	if err != nil {
		return cli.WrapConfigError("lint.format", err)
	}

	a, err := newApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	tracker := &health.RunTracker{}
	formatter := cli.NewFormatter(format, cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	lint := func(ctx context.Context, reason string) error {
		a.logger.Info("linting models", "reason", reason)
		report, err := a.runner.Run(ctx, nil)
		tracker.Finished(time.Now(), err)
		if err != nil {
			return err
		}
		if err := formatter.FormatReport(out, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		a.writeMetrics()
		return nil
	}

	svc, err := watch.NewService(cfg.Models.Dir, &cfg.Watch, lint, a.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	if addr := cfg.Telemetry.Metrics.ListenAddress; addr != "" {
		srv, err := startStatusServer(addr, newStatusMux(a, tracker))
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		a.logger.Info("status server listening", "address", srv.Addr())

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("status server shutdown failed", "error", err)
			}
		}()

		go func() {
			if err, ok := <-srv.Errors(); ok {
				a.logger.Error("status server stopped", "error", err)
				stop()
			}
		}()
	}

	if a.pruner != nil && cfg.History.PruneSchedule != "" {
		scheduler := retention.NewScheduler(a.pruner)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer scheduler.Stop()
	}

	if err := svc.Run(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "✓ Watch stopped")
	return nil
}
