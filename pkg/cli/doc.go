/*
Package cli provides command-line interface utilities for modellint.

It holds the report formatters, the locale progress bar, signal handling
and the error types that decide the process exit code.

Output Formatting:

Lint reports and run history can be rendered as text, JSON or CSV:

	formatter := cli.NewFormatter(cli.FormatText, os.Stderr)
	if err := formatter.FormatReport(os.Stdout, report); err != nil {
		return err
	}

The text format prints the launch banner, one warning line per finding,
every fatal locale error prefixed with "✗ Error: " and a summary. CSV
writes one row per finding.

Progress Reporting:

LocaleBar redraws one stderr line as locales finish:

	runner, err := linter.NewRunner(cfg,
		linter.WithProgress(cli.NewLocaleBar(os.Stderr)),
	)

Exit Codes:

ExitCode maps a command error to 0, 1 or 2. Any ConfigError in the chain
yields ExitConfig.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
