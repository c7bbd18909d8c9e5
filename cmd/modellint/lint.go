package main

import (
	"fmt"

	"mercator-hq/modellint/pkg/cli"
	"mercator-hq/modellint/pkg/config"
	"mercator-hq/modellint/pkg/linter"

	"github.com/spf13/cobra"
)

type lintOptions struct {
	locales     []string
	dir         string
	strict      bool
	format      string
	disable     []string
	concurrency int
	progress    bool
}

func newLintCmd(root *rootOptions) *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [locale...]",
		Short: "Lint model files",
		Long: `Lint the per-locale JSON model files for data-quality problems.

The lint command parses each <dir>/<locale>.json file and runs every enabled check:
  - duplicate-phrases: a phrase used by more than one intent
  - duplicate-entities: an entity value or synonym used more than once
  - phrase-whitespace: leading or trailing whitespace in a phrase
  - entity-whitespace: leading or trailing whitespace in a value or synonym
  - brackets: unbalanced { } in a phrase

Findings are warnings. A model that cannot be read, is not valid JSON or has
no intents is an error and fails the command; the other locales are still
linted. Without locales, every *.json file of the models directory is linted.

Examples:
  # Lint every model in the configured directory
  modellint lint

  # Lint German and English only
  modellint lint de en

  # Strict mode (warnings as errors)
  modellint lint --strict

  # CSV output for spreadsheets, without the bracket check
  modellint lint --format csv --disable brackets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.locales, "locale", "l", nil, "locale to lint (repeatable)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "models directory")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat warnings as errors")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text, json, csv")
	cmd.Flags().StringSliceVar(&opts.disable, "disable", nil, "check to disable (repeatable)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "number of locales linted in parallel")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")

	return cmd
}

// apply overrides cfg with the flags that were set.
func (o *lintOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Models.Dir = o.dir
	}
	if flags.Changed("strict") {
		cfg.Lint.Strict = o.strict
	}
	if flags.Changed("format") {
		cfg.Lint.Format = o.format
	}
	if flags.Changed("disable") {
		cfg.Lint.DisabledChecks = append(cfg.Lint.DisabledChecks, o.disable...)
	}
	if flags.Changed("concurrency") {
		cfg.Lint.Concurrency = o.concurrency
	}
}

func runLint(cmd *cobra.Command, root *rootOptions, opts *lintOptions, args []string) error {
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

	var runnerOpts []linter.Option
	if opts.progress {
		runnerOpts = append(runnerOpts, linter.WithProgress(cli.NewLocaleBar(cmd.ErrOrStderr())))
	}

	a, err := newApp(cfg, cmd.ErrOrStderr(), runnerOpts...)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	locales := append(append([]string(nil), opts.locales...), args...)
	report, err := a.runner.Run(ctx, locales)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	formatter := cli.NewFormatter(format, cmd.ErrOrStderr())
	if err := formatter.FormatReport(cmd.OutOrStdout(), report); err != nil {
		return cli.NewCommandError("lint", fmt.Errorf("failed to write report: %w", err))
	}

	a.writeMetrics()

	return lintResult(report, cfg.Lint.Strict)
}

// lintResult turns a report into the command's exit status.
func lintResult(report *linter.Report, strict bool) error {
	if report.ErrorCount() > 0 {
		return cli.NewCommandError("lint", cli.ErrLocaleFailed)
	}
	if strict && report.WarningCount() > 0 {
		return cli.NewCommandError("lint", cli.ErrStrictWarnings)
	}
	return nil
}
