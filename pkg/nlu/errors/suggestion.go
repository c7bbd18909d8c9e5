package errors

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestionDistance is the largest edit distance still offered as "Did you mean".
const maxSuggestionDistance = 3

// SuggestKey looks for a key in present that is probably a misspelling of the
// required key. It returns an empty string when nothing is close enough.
func SuggestKey(required string, present []string) string {
	if len(present) == 0 || required == "" {
		return ""
	}

	minDistance := maxSuggestionDistance + 1
	var bestMatch string

	for _, key := range present {
		if key == required {
			return ""
		}
		dist := levenshtein.Distance(strings.ToLower(key), strings.ToLower(required), nil)
		if dist < minDistance {
			minDistance = dist
			bestMatch = key
		}
	}

	if bestMatch == "" {
		return ""
	}
	return fmt.Sprintf("Found '%s', did you mean '%s'?", bestMatch, required)
}

// SuggestMissingKey suggests adding a required key to the model.
func SuggestMissingKey(key string, exampleValue string) string {
	if exampleValue != "" {
		return fmt.Sprintf("Add \"%s\": %s to the model", key, exampleValue)
	}
	return fmt.Sprintf("Add \"%s\" to the model", key)
}
