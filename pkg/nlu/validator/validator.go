package validator

import (
	"fmt"

	"mercator-hq/modellint/pkg/nlu/ast"
	nluErrors "mercator-hq/modellint/pkg/nlu/errors"
	"mercator-hq/modellint/pkg/nlu/parser"
)

// Options configures which checks a Validator runs.
type Options struct {
	// Disabled lists checks that are skipped. All checks run by default.
	Disabled []Check
}

// Validator runs the model checks and reports findings to a sink.
// A Validator holds no per-call state and may be shared between goroutines.
type Validator struct {
	disabled map[Check]bool
}

// NewValidator creates a validator with every check enabled.
func NewValidator() *Validator {
	return NewValidatorWithOptions(Options{})
}

// NewValidatorWithOptions creates a validator with the given options.
func NewValidatorWithOptions(opts Options) *Validator {
	disabled := make(map[Check]bool, len(opts.Disabled))
	for _, c := range opts.Disabled {
		disabled[c] = true
	}
	return &Validator{disabled: disabled}
}

// Enabled reports whether the check runs.
func (v *Validator) Enabled(c Check) bool {
	return !v.disabled[c]
}

// Validate runs all enabled checks on model in a fixed order and reports
// every finding to sink. Findings never cause an error.
//
// A model without an "intents" section is a structural problem: Validate
// returns an *errors.ErrorList describing it, but still runs the entity
// type checks because they do not depend on intents.
func (v *Validator) Validate(model *ast.Model, locale string, sink Sink) error {
	errs := nluErrors.NewErrorList()

	if model == nil {
		errs.AddError(nluErrors.ErrorTypeStructural, fmt.Sprintf("No model for locale '%s'", locale), ast.Location{})
		return errs
	}
	if sink == nil {
		sink = SinkFunc(func(Finding) {})
	}

	if !model.HasIntents() {
		suggestion := nluErrors.SuggestKey(parser.KeyIntents, model.Keys)
		if suggestion == "" {
			suggestion = nluErrors.SuggestMissingKey(parser.KeyIntents, "{}")
		}
		errs.AddErrorWithSuggestion(
			nluErrors.ErrorTypeStructural,
			fmt.Sprintf("Model for locale '%s' has no '%s' section", locale, parser.KeyIntents),
			model.Location,
			suggestion,
		)
	}

	state := &checkState{
		locale:     locale,
		sink:       sink,
		normalizer: newNormalizer(),
	}

	for _, c := range AllChecks {
		if !v.Enabled(c) {
			continue
		}
		if err := ast.Walk(model, newCheck(c, state)); err != nil {
			errs.AddError(nluErrors.ErrorTypeStructural, err.Error(), model.Location)
		}
	}

	return errs.ToError()
}

// checkState is shared by the checks of a single Validate call.
type checkState struct {
	locale     string
	sink       Sink
	normalizer *normalizer
}

func (s *checkState) report(f Finding) {
	f.Locale = s.locale
	s.sink.Report(f)
}

// newCheck returns a fresh visitor implementing c.
// Each visitor builds its own lookup maps.
func newCheck(c Check, state *checkState) ast.Visitor {
	switch c {
	case CheckDuplicatePhrases:
		return newDuplicatePhrases(state)
	case CheckDuplicateEntities:
		return newDuplicateEntities(state)
	case CheckPhraseWhitespace:
		return &phraseWhitespace{state: state}
	case CheckEntityWhitespace:
		return &entityWhitespace{state: state}
	case CheckBrackets:
		return &brackets{state: state}
	default:
		return ast.BaseVisitor{}
	}
}
