package errors

import (
	"errors"
	"fmt"
	"strings"

	"mercator-hq/modellint/pkg/nlu/ast"
)

// ErrorType is the category of a problem that stops a model from being
// linted. Warnings about model content are never errors.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // not valid JSON
	ErrorTypeStructural ErrorType = "structural" // valid JSON of the wrong shape
	ErrorTypeIO         ErrorType = "io"         // file missing, unreadable or too large
)

// Error is one fatal problem in a model file.
type Error struct {
	Type       ErrorType
	Message    string
	Location   ast.Location
	Context    string // numbered source lines around Location
	Suggestion string
}

// Error renders the problem with its location, source excerpt and
// suggestion, one item per line.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", e.Type, e.Message)
	if e.Location.IsValid() {
		fmt.Fprintf(&b, "  --> %s\n", e.Location)
	}
	if e.Context != "" {
		b.WriteString("  |\n")
		b.WriteString(e.Context)
		b.WriteString("  |\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  = suggestion: %s\n", e.Suggestion)
	}
	return b.String()
}

// ErrorList collects every structural problem of a model so a single
// parse reports all of them.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList returns an empty list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends err.
func (l *ErrorList) Add(err *Error) {
	l.Errors = append(l.Errors, err)
}

// AddError appends a problem without a suggestion.
func (l *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	l.Add(&Error{Type: errType, Message: message, Location: location})
}

// AddErrorWithSuggestion appends a problem with a suggested fix.
func (l *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location ast.Location, suggestion string) {
	l.Add(&Error{Type: errType, Message: message, Location: location, Suggestion: suggestion})
}

// HasErrors reports whether the list is non-empty.
func (l *ErrorList) HasErrors() bool {
	return len(l.Errors) > 0
}

// Count returns the number of problems.
func (l *ErrorList) Count() int {
	return len(l.Errors)
}

// HasErrorType reports whether any problem has the given type.
func (l *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range l.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// Type returns the type of the first problem, or "" for an empty list.
func (l *ErrorList) Type() ErrorType {
	if len(l.Errors) == 0 {
		return ""
	}
	return l.Errors[0].Type
}

func (l *ErrorList) Error() string {
	switch len(l.Errors) {
	case 0:
		return ""
	case 1:
		return l.Errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d error(s):\n", len(l.Errors))
	for i, err := range l.Errors {
		fmt.Fprintf(&b, "\nError %d:\n%s", i+1, err.Error())
	}
	return b.String()
}

// ToError returns the list as an error, or nil when it is empty.
func (l *ErrorList) ToError() error {
	if !l.HasErrors() {
		return nil
	}
	return l
}

// TypeOf returns the category of an error returned by the parser or
// validator. Errors from outside this package count as io errors.
func TypeOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	var single *Error
	if errors.As(err, &single) {
		return single.Type
	}
	var list *ErrorList
	if errors.As(err, &list) && list.HasErrors() {
		return list.Type()
	}
	return ErrorTypeIO
}
