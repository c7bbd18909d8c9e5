// Package linter runs the model checks over every locale of a models
// directory and assembles the results into a Report.
//
// A Runner parses and validates each <locale>.json file, optionally in
// parallel, and keeps the results in locale order. Each run is traced,
// counted in metrics, and saved to the run history when one is configured.
// A locale that cannot be loaded is reported in its LocaleResult and never
// stops the remaining locales.
//
// # Usage
//
//	runner, err := linter.NewRunner(cfg,
//		linter.WithLogger(logger),
//		linter.WithMetrics(collector),
//	)
//	if err != nil {
//		return err
//	}
//	report, err := runner.Run(ctx, nil)
//
// DetectRevision returns the git commit of the models directory, which is
// stored with each report.
package linter
