package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on lint spans.
const (
	AttrRunID     = "modellint.run_id"
	AttrModelsDir = "modellint.models_dir"
	AttrRevision  = "modellint.revision"
	AttrLocales   = "modellint.locales"
	AttrWarnings  = "modellint.warnings"
	AttrErrors    = "modellint.errors"

	AttrLocale   = "modellint.locale"
	AttrFile     = "modellint.file"
	AttrFindings = "modellint.findings"

	AttrErrorType = "modellint.error.type"
)

// RunInfo describes a lint run on its root span.
type RunInfo struct {
	ID        string
	ModelsDir string
	Revision  string // omitted when empty
	Locales   []string
}

func (r RunInfo) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrRunID, r.ID),
		attribute.String(AttrModelsDir, r.ModelsDir),
		attribute.StringSlice(AttrLocales, r.Locales),
	}
	if r.Revision != "" {
		attrs = append(attrs, attribute.String(AttrRevision, r.Revision))
	}
	return attrs
}

func localeAttributes(locale, file string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrLocale, locale),
		attribute.String(AttrFile, file),
	}
}

// EndRun records the totals of a completed run and marks its span OK.
// Failed locales do not fail the run span; they are counted in errors.
func EndRun(span trace.Span, warnings, errors int) {
	span.SetAttributes(
		attribute.Int(AttrWarnings, warnings),
		attribute.Int(AttrErrors, errors),
	)
	span.SetStatus(codes.Ok, "")
}

// EndLocale records the warnings of a validated locale and marks its
// span OK.
func EndLocale(span trace.Span, findings int) {
	span.SetAttributes(attribute.Int(AttrFindings, findings))
	span.SetStatus(codes.Ok, "")
}

// Fail records err on span and marks it failed. errorType is the category
// of a locale error ("syntax", "structural", "io") and may be empty.
func Fail(span trace.Span, errorType string, err error) {
	if err == nil {
		return
	}
	if errorType != "" {
		span.SetAttributes(attribute.String(AttrErrorType, errorType))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
