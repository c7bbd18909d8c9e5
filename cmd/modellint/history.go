package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mercator-hq/modellint/pkg/cli"
	"mercator-hq/modellint/pkg/history"
	"mercator-hq/modellint/pkg/linter"

	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of runs listed by default.
const defaultHistoryLimit = 20

type historyOptions struct {
	format string
	limit  int
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded lint runs",
		Long: `Inspect the lint runs recorded in the history database.

History is recorded when history.enabled is set in the configuration.

Examples:
  # List the 20 most recent runs
  modellint history list

  # Show the findings of one run as JSON
  modellint history show 6f1c2a3e-... --format json`,
	}
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json, csv")

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, root, opts)
		},
	}
	list.Flags().IntVarP(&opts.limit, "limit", "n", defaultHistoryLimit, "maximum number of runs (0 for all)")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the results of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, root, opts, args[0])
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

// openHistory opens the configured history store.
func openHistory(root *rootOptions) (history.Store, error) {
	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, cli.NewConfigError("history.enabled", "history is disabled")
	}

	store, err := history.Open(&cfg.History, nil)
	if err != nil {
		return nil, cli.NewCommandError("history", err)
	}
	return store, nil
}

func historyFormatter(cmd *cobra.Command, name string) (cli.Formatter, error) {
	format, err := cli.ParseFormat(name)
	if err != nil {
		return nil, cli.WrapConfigError("format", err)
	}
	formatter := cli.NewFormatter(format, cmd.OutOrStdout())
	if tf, ok := formatter.(*cli.TextFormatter); ok {
		tf.HideBanner = true
	}
	return formatter, nil
}

func runHistoryList(cmd *cobra.Command, root *rootOptions, opts *historyOptions) error {
	if opts.limit < 0 {
		return cli.NewConfigError("limit", "must not be negative")
	}
	formatter, err := historyFormatter(cmd, opts.format)
	if err != nil {
		return err
	}

	store, err := openHistory(root)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(commandContext(cmd), opts.limit)
	if err != nil {
		return cli.NewCommandError("history list", err)
	}
	return formatter.FormatRuns(cmd.OutOrStdout(), runs)
}

func runHistoryShow(cmd *cobra.Command, root *rootOptions, opts *historyOptions, id string) error {
	formatter, err := historyFormatter(cmd, opts.format)
	if err != nil {
		return err
	}

	store, err := openHistory(root)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := getRun(commandContext(cmd), store, id)
	if err != nil {
		return err
	}

	if _, ok := formatter.(*cli.TextFormatter); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Run %s (%s) at %s\n", run.ID, run.Status, run.StartedAt.Local().Format(time.DateTime))
		if run.Revision != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Revision: %s\n", run.Revision)
		}
	}
	return formatter.FormatReport(cmd.OutOrStdout(), linter.ReportFromHistory(run))
}

func getRun(ctx context.Context, store history.Store, id string) (*history.Run, error) {
	run, err := store.GetRun(ctx, id)
	if errors.Is(err, history.ErrNotFound) {
		return nil, cli.NewCommandError("history show", fmt.Errorf("run %q not found", id))
	}
	if err != nil {
		return nil, cli.NewCommandError("history show", err)
	}
	return run, nil
}
