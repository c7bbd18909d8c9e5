// Package logging provides structured operational logging for modellint.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with run IDs, locales and model files
//   - Configurable log levels (debug, info, warn, error)
//
// Lint findings are not log lines. They are rendered by the output layer so
// that their text stays stable; the logger carries events such as "model
// parsed" or "run finished".
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	    Writer: os.Stderr,
//	})
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithLocale(ctx, "de")
//	logger.InfoContext(ctx, "Model parsed", "phrases", 42)
//	// ... run_id=... locale=de phrases=42
package logging
