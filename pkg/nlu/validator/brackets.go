package validator

import "mercator-hq/modellint/pkg/nlu/ast"

// brackets reports phrases whose {slot} brackets do not balance.
type brackets struct {
	ast.BaseVisitor
	state *checkState
}

func (b *brackets) VisitPhrase(intent *ast.Intent, phrase *ast.Phrase) error {
	code, ok := checkBrackets(phrase.Text)
	if ok {
		return nil
	}
	b.state.report(Finding{
		Check:     CheckBrackets,
		Code:      code,
		Text:      phrase.Text,
		Container: intent.Name,
		Location:  phrase.Location,
	})
	return nil
}

// checkBrackets scans s rune by rune with a depth counter. A depth above one
// counts as a missing closing bracket, a negative depth as a missing opening
// bracket; both stop the scan. An unclosed bracket at the end is also a
// missing closing bracket.
func checkBrackets(s string) (Code, bool) {
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}

		if depth > 1 {
			return CodeMissingClosingBracket, false
		}
		if depth < 0 {
			return CodeMissingOpeningBracket, false
		}
	}

	if depth == 1 {
		return CodeMissingClosingBracket, false
	}
	return "", true
}
