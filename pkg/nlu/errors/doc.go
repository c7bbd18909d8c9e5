// Package errors provides rich error types for language model parsing.
//
// Parse failures carry a source location, a source excerpt and, where possible,
// a suggestion. They are distinct from lint findings: a finding is a data-quality
// observation that never stops validation, an Error means the model for that
// locale could not be validated at all.
//
// # Error Types
//
// ErrorTypeSyntax: the file is not valid JSON
//
// ErrorTypeStructural: the JSON is valid but a value has the wrong shape
// (missing "intents", a phrase that is not a string, ...)
//
// ErrorTypeIO: the file could not be read
//
// # Basic Usage
//
//	errList := errors.NewErrorList()
//	errList.AddErrorWithSuggestion(errors.ErrorTypeStructural,
//	    "Missing required key 'intents'", location,
//	    errors.SuggestKey("intents", model.Keys))
//
//	if errList.HasErrors() {
//	    return errList.ToError()
//	}
//
// # Error Format
//
//	[structural] Phrase must be a string, got number
//	  --> models/de.json:5:21
//	  |
//	     4 |     "HelloIntent": {
//	  -> 5 |       "phrases": ["hi", 42]
//	     6 |     }
//	  |
package errors
