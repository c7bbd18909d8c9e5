package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"mercator-hq/modellint/pkg/history"
	"mercator-hq/modellint/pkg/linter"
	"mercator-hq/modellint/pkg/nlu/validator"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output, one row per finding.
	FormatCSV OutputFormat = "csv"
)

// Banner is printed before the results of a text report.
const Banner = "👌 Launching Model Linter"

// ErrorPrefix starts every fatal locale error in a text report.
const ErrorPrefix = "✗ Error: "

// ParseFormat returns the output format with the given name.
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(name); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, csv)", name)
	}
}

// Formatter renders lint reports and run history.
type Formatter interface {
	FormatReport(w io.Writer, report *linter.Report) error
	FormatRuns(w io.Writer, runs []*history.Run) error
}

// NewFormatter creates a new formatter for the specified format.
// Text reports write warnings and errors to warnings when it is not nil.
func NewFormatter(format OutputFormat, warnings io.Writer) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{Warnings: warnings}
	}
}

// TextFormatter formats output as human-readable text.
type TextFormatter struct {
	// Warnings receives warning lines and fatal errors. Defaults to the
	// writer passed to FormatReport.
	Warnings io.Writer

	// HideBanner omits the launch banner, for reports of past runs.
	HideBanner bool
}

// FormatReport writes the banner, one line per finding, every fatal locale
// error and a summary.
func (f *TextFormatter) FormatReport(w io.Writer, report *linter.Report) error {
	warn := f.Warnings
	if warn == nil {
		warn = w
	}

	if !f.HideBanner {
		if _, err := fmt.Fprintln(w, Banner); err != nil {
			return err
		}
	}

	for _, res := range report.Results {
		for _, finding := range res.Findings {
			if _, err := fmt.Fprintln(warn, finding.String()); err != nil {
				return err
			}
		}
		if res.Err != nil {
			msg := strings.TrimRight(res.Err.Error(), "\n")
			if _, err := fmt.Fprintf(warn, "%s%s: %s\n", ErrorPrefix, res.Locale, msg); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\nSummary:\n  %d locale(s), %d warning(s), %d error(s) in %s\n",
		len(report.Results), report.WarningCount(), report.ErrorCount(), report.Duration.Round(time.Millisecond))
	return err
}

// FormatRuns writes a table of stored runs.
func (f *TextFormatter) FormatRuns(w io.Writer, runs []*history.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tSTARTED\tSTATUS\tWARNINGS\tERRORS\tREVISION")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Status,
			run.Warnings,
			run.Errors,
			shortRevision(run.Revision),
		)
	}
	return tw.Flush()
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// jsonReport is the JSON document of a lint report.
type jsonReport struct {
	RunID     string       `json:"run_id"`
	StartedAt time.Time    `json:"started_at"`
	Duration  string       `json:"duration"`
	ModelsDir string       `json:"models_dir"`
	Revision  string       `json:"revision,omitempty"`
	Status    string       `json:"status"`
	Warnings  int          `json:"warnings"`
	Errors    int          `json:"errors"`
	Results   []jsonLocale `json:"results"`
}

type jsonLocale struct {
	Locale    string        `json:"locale"`
	File      string        `json:"file"`
	Error     string        `json:"error,omitempty"`
	ErrorType string        `json:"error_type,omitempty"`
	Findings  []jsonFinding `json:"findings"`
}

type jsonFinding struct {
	validator.Finding
	Message string `json:"message"`
}

// FormatReport writes the report as a single JSON document.
func (f *JSONFormatter) FormatReport(w io.Writer, report *linter.Report) error {
	doc := jsonReport{
		RunID:     report.RunID,
		StartedAt: report.StartedAt,
		Duration:  report.Duration.String(),
		ModelsDir: report.ModelsDir,
		Revision:  report.Revision,
		Status:    report.Status(),
		Warnings:  report.WarningCount(),
		Errors:    report.ErrorCount(),
		Results:   make([]jsonLocale, len(report.Results)),
	}
	for i, res := range report.Results {
		loc := jsonLocale{
			Locale:    res.Locale,
			File:      res.File,
			ErrorType: res.ErrorType(),
			Findings:  make([]jsonFinding, len(res.Findings)),
		}
		if res.Err != nil {
			loc.Error = strings.TrimRight(res.Err.Error(), "\n")
		}
		for j, finding := range res.Findings {
			loc.Findings[j] = jsonFinding{Finding: finding, Message: finding.Message()}
		}
		doc.Results[i] = loc
	}
	return f.encode(w, doc)
}

// FormatRuns writes the runs as a JSON array.
func (f *JSONFormatter) FormatRuns(w io.Writer, runs []*history.Run) error {
	if runs == nil {
		runs = []*history.Run{}
	}
	return f.encode(w, runs)
}

func (f *JSONFormatter) encode(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// CSVFormatter formats output as CSV.
type CSVFormatter struct{}

// ReportHeaders are the columns of a CSV report.
var ReportHeaders = []string{
	"run_id", "locale", "check", "code", "text", "container",
	"previous_owner", "file", "line", "column", "message",
}

// RunHeaders are the columns of a CSV run list.
var RunHeaders = []string{
	"run_id", "started_at", "duration_ms", "status", "warnings", "errors", "revision", "models_dir",
}

// FormatReport writes one row per finding. A locale that failed gets a row
// with check "error" and its error type as code.
func (f *CSVFormatter) FormatReport(w io.Writer, report *linter.Report) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(ReportHeaders); err != nil {
		return err
	}

	for _, res := range report.Results {
		for _, finding := range res.Findings {
			row := []string{
				report.RunID,
				finding.Locale,
				string(finding.Check),
				string(finding.Code),
				finding.Text,
				finding.Container,
				finding.PreviousOwner,
				finding.Location.File,
				strconv.Itoa(finding.Location.Line),
				strconv.Itoa(finding.Location.Column),
				strings.TrimSpace(finding.Message()),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		if res.Err != nil {
			first, _, _ := strings.Cut(res.Err.Error(), "\n")
			row := []string{report.RunID, res.Locale, "error", res.ErrorType(), "", "", "", res.File, "", "", first}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// FormatRuns writes one row per run.
func (f *CSVFormatter) FormatRuns(w io.Writer, runs []*history.Run) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(RunHeaders); err != nil {
		return err
	}
	for _, run := range runs {
		row := []string{
			run.ID,
			run.StartedAt.UTC().Format(time.RFC3339),
			strconv.FormatInt(run.Duration.Milliseconds(), 10),
			run.Status,
			strconv.Itoa(run.Warnings),
			strconv.Itoa(run.Errors),
			run.Revision,
			run.ModelsDir,
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func shortRevision(rev string) string {
	if rev == "" {
		return "-"
	}
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}
