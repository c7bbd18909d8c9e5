package main

import (
	"fmt"
	"os"

	"mercator-hq/modellint/pkg/cli"

	"github.com/spf13/cobra"
)

// defaultConfigFile is used when --config is not given and the file exists.
const defaultConfigFile = "modellint.yaml"

// rootOptions holds the global flags shared by all subcommands.
type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "modellint",
		Short: "modellint - data-quality linter for JSON language models",
		Long: `modellint checks the per-locale JSON language models of a voice or chat
application for data-quality problems: duplicate phrases across intents,
duplicate entity values and synonyms, superfluous whitespace and unbalanced
slot brackets.

Each locale is stored as <models-dir>/<locale>.json. Findings are warnings;
a model that cannot be read or has no intents is an error.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags (available to all subcommands)
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path (default: "+defaultConfigFile+" if present)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "override log format (json, text, console)")

	cmd.AddCommand(
		newLintCmd(opts),
		newWatchCmd(opts),
		newHistoryCmd(opts),
		newVersionCmd(),
	)
	cmd.AddCommand(newCompletionCmd(cmd))

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
