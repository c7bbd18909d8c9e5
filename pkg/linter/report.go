package linter

import (
	"errors"
	"time"

	"mercator-hq/modellint/pkg/history"
	nluErrors "mercator-hq/modellint/pkg/nlu/errors"
	"mercator-hq/modellint/pkg/nlu/validator"
)

// Report is the result of one lint run over several locales.
type Report struct {
	RunID     string         `json:"run_id"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
	ModelsDir string         `json:"models_dir"`
	Revision  string         `json:"revision,omitempty"`
	Results   []LocaleResult `json:"results"`
}

// LocaleResult is the outcome for a single locale. Findings may be present
// even when Err is set: a model without intents still gets its entity checks.
type LocaleResult struct {
	Locale   string              `json:"locale"`
	File     string              `json:"file"`
	Findings []validator.Finding `json:"findings"`
	Err      error               `json:"-"`
	Duration time.Duration       `json:"duration"`
}

// WarningCount returns the number of findings across all locales.
func (r *Report) WarningCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Findings)
	}
	return n
}

// ErrorCount returns the number of locales that failed with a fatal error.
func (r *Report) ErrorCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Status summarizes the run: "failed" when any locale failed, "warnings"
// when any finding was emitted, "clean" otherwise.
func (r *Report) Status() string {
	switch {
	case r.ErrorCount() > 0:
		return history.StatusFailed
	case r.WarningCount() > 0:
		return history.StatusWarnings
	default:
		return history.StatusClean
	}
}

// Findings returns every finding in report order.
func (r *Report) Findings() []validator.Finding {
	var out []validator.Finding
	for _, res := range r.Results {
		out = append(out, res.Findings...)
	}
	return out
}

// ErrorType returns the category of the locale's fatal error, or "".
func (lr LocaleResult) ErrorType() string {
	if lr.Err == nil {
		return ""
	}
	var stored *storedError
	if errors.As(lr.Err, &stored) {
		return stored.errType
	}
	return string(nluErrors.TypeOf(lr.Err))
}

// HistoryRun converts the report into its stored form.
func (r *Report) HistoryRun() *history.Run {
	run := &history.Run{
		ID:        r.RunID,
		StartedAt: r.StartedAt,
		Duration:  r.Duration,
		ModelsDir: r.ModelsDir,
		Revision:  r.Revision,
		Status:    r.Status(),
		Warnings:  r.WarningCount(),
		Errors:    r.ErrorCount(),
		Locales:   make([]history.LocaleRun, len(r.Results)),
	}
	for i, res := range r.Results {
		lr := history.LocaleRun{
			Locale:    res.Locale,
			File:      res.File,
			ErrorType: res.ErrorType(),
			Findings:  res.Findings,
		}
		if res.Err != nil {
			lr.Error = res.Err.Error()
		}
		run.Locales[i] = lr
	}
	return run
}

// storedError is a locale error read back from history.
type storedError struct {
	errType string
	message string
}

func (e *storedError) Error() string { return e.message }

// ReportFromHistory rebuilds a report from a stored run so it can be
// rendered with the same formatters as a live run.
func ReportFromHistory(run *history.Run) *Report {
	report := &Report{
		RunID:     run.ID,
		StartedAt: run.StartedAt,
		Duration:  run.Duration,
		ModelsDir: run.ModelsDir,
		Revision:  run.Revision,
		Results:   make([]LocaleResult, len(run.Locales)),
	}
	for i, lr := range run.Locales {
		res := LocaleResult{
			Locale:   lr.Locale,
			File:     lr.File,
			Findings: lr.Findings,
		}
		if lr.Error != "" {
			res.Err = &storedError{errType: lr.ErrorType, message: lr.Error}
		}
		report.Results[i] = res
	}
	return report
}
