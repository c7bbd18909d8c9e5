package validator

import (
	"fmt"

	"mercator-hq/modellint/pkg/nlu/ast"
)

// WarningPrefix starts every rendered warning line.
const WarningPrefix = "🔺 Warning: "

// Check identifies one of the independent model checks.
type Check string

const (
	CheckDuplicatePhrases  Check = "duplicate-phrases"
	CheckDuplicateEntities Check = "duplicate-entities"
	CheckPhraseWhitespace  Check = "phrase-whitespace"
	CheckEntityWhitespace  Check = "entity-whitespace"
	CheckBrackets          Check = "brackets"
)

// AllChecks lists every check in execution order.
var AllChecks = []Check{
	CheckDuplicatePhrases,
	CheckDuplicateEntities,
	CheckPhraseWhitespace,
	CheckEntityWhitespace,
	CheckBrackets,
}

// ParseCheck returns the check with the given name.
func ParseCheck(name string) (Check, error) {
	for _, c := range AllChecks {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown check %q", name)
}

// Code identifies the kind of a finding.
type Code string

const (
	CodeDuplicatePhrase       Code = "duplicate-phrase"
	CodeDuplicateEntityValue  Code = "duplicate-entity-value"
	CodeDuplicateSynonym      Code = "duplicate-synonym"
	CodePhraseWhitespace      Code = "phrase-whitespace"
	CodeEntityValueWhitespace Code = "entity-value-whitespace"
	CodeSynonymWhitespace     Code = "synonym-whitespace"
	CodeMissingClosingBracket Code = "missing-closing-bracket"
	CodeMissingOpeningBracket Code = "missing-opening-bracket"
)

// Finding is a single data-quality warning about a model.
type Finding struct {
	Check         Check        `json:"check"`
	Code          Code         `json:"code"`
	Locale        string       `json:"locale"`
	Text          string       `json:"text"`                     // Normalized text for duplicates, raw text otherwise
	Container     string       `json:"container"`                // Intent or entity type the text was found in
	PreviousOwner string       `json:"previous_owner,omitempty"` // Owner recorded before a duplicate was seen
	Location      ast.Location `json:"location"`
}

// Message renders the finding without the warning prefix.
func (f Finding) Message() string {
	switch f.Code {
	case CodeDuplicatePhrase:
		return fmt.Sprintf("phrase '%s' is used in both intents '%s' and '%s' in '%s' model. ",
			f.Text, f.PreviousOwner, f.Container, f.Locale)
	case CodeDuplicateEntityValue:
		return fmt.Sprintf("value '%s' is used at least twice in both entity types '%s' and '%s' in '%s' model. ",
			f.Text, f.PreviousOwner, f.Container, f.Locale)
	case CodeDuplicateSynonym:
		return fmt.Sprintf("synonym/value '%s' is used at least twice in both entity types '%s' and '%s' in '%s' model. ",
			f.Text, f.PreviousOwner, f.Container, f.Locale)
	case CodePhraseWhitespace:
		return fmt.Sprintf("phrase '%s' has superfluous whitespace in intent '%s' in '%s' model. ",
			f.Text, f.Container, f.Locale)
	case CodeEntityValueWhitespace:
		return fmt.Sprintf("value '%s' has superfluous whitespace in entity type '%s' in '%s' model. ",
			f.Text, f.Container, f.Locale)
	case CodeSynonymWhitespace:
		return fmt.Sprintf("synonym/value '%s' has superfluous whitespace in entity type '%s' in '%s' model. ",
			f.Text, f.Container, f.Locale)
	case CodeMissingClosingBracket:
		return fmt.Sprintf("missing closing bracket in phrase '%s' in intent '%s' in '%s' model. ",
			f.Text, f.Container, f.Locale)
	case CodeMissingOpeningBracket:
		return fmt.Sprintf("missing opening bracket in phrase '%s' in intent '%s' in '%s' model. ",
			f.Text, f.Container, f.Locale)
	default:
		return fmt.Sprintf("%s '%s' in '%s' in '%s' model. ", f.Code, f.Text, f.Container, f.Locale)
	}
}

// String renders the finding as a full warning line.
func (f Finding) String() string {
	return WarningPrefix + f.Message()
}
