package nlu

import (
	"mercator-hq/modellint/pkg/nlu/ast"
	"mercator-hq/modellint/pkg/nlu/parser"
	"mercator-hq/modellint/pkg/nlu/validator"
)

// LintFile is a convenience function that parses a model file and validates it.
// It returns the findings in report order. A structural error from validation is
// returned together with the findings the remaining checks produced.
func LintFile(path, locale string) ([]validator.Finding, error) {
	p := parser.NewParser()
	model, err := p.Parse(path)
	if err != nil {
		return nil, err
	}
	return Lint(model, locale)
}

// LintBytes parses model JSON from bytes and validates it.
func LintBytes(data []byte, sourcePath, locale string) ([]validator.Finding, error) {
	p := parser.NewParser()
	model, err := p.ParseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	return Lint(model, locale)
}

// Lint validates a parsed model with every check enabled.
func Lint(model *ast.Model, locale string) ([]validator.Finding, error) {
	collector := validator.NewCollector()
	err := validator.NewValidator().Validate(model, locale, collector)
	return collector.Findings(), err
}

// Parse parses a model file without validation.
func Parse(path string) (*ast.Model, error) {
	return parser.NewParser().Parse(path)
}
