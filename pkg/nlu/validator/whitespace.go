package validator

import "mercator-hq/modellint/pkg/nlu/ast"

// phraseWhitespace reports phrases with leading or trailing white space.
type phraseWhitespace struct {
	ast.BaseVisitor
	state *checkState
}

func (w *phraseWhitespace) VisitPhrase(intent *ast.Intent, phrase *ast.Phrase) error {
	if hasSuperfluousWhitespace(phrase.Text) {
		w.state.report(Finding{
			Check:     CheckPhraseWhitespace,
			Code:      CodePhraseWhitespace,
			Text:      phrase.Text,
			Container: intent.Name,
			Location:  phrase.Location,
		})
	}
	return nil
}

// entityWhitespace reports entity values and synonyms with leading or
// trailing white space.
type entityWhitespace struct {
	ast.BaseVisitor
	state *checkState
}

func (w *entityWhitespace) VisitEntityValue(entityType *ast.EntityType, value ast.EntityValue) error {
	if hasSuperfluousWhitespace(value.Raw()) {
		w.state.report(Finding{
			Check:     CheckEntityWhitespace,
			Code:      CodeEntityValueWhitespace,
			Text:      value.Raw(),
			Container: entityType.Name,
			Location:  value.Loc(),
		})
	}
	return nil
}

func (w *entityWhitespace) VisitSynonym(entityType *ast.EntityType, _ *ast.StructuredValue, synonym *ast.Synonym) error {
	if hasSuperfluousWhitespace(synonym.Text) {
		w.state.report(Finding{
			Check:     CheckEntityWhitespace,
			Code:      CodeSynonymWhitespace,
			Text:      synonym.Text,
			Container: entityType.Name,
			Location:  synonym.Location,
		})
	}
	return nil
}
