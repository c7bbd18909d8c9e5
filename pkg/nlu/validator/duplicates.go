package validator

import "mercator-hq/modellint/pkg/nlu/ast"

// duplicatePhrases reports phrases whose normalized text is used by more
// than one intent. After a collision the newer intent becomes the owner,
// so a third occurrence is reported against the second.
type duplicatePhrases struct {
	ast.BaseVisitor
	state  *checkState
	owners map[string]string // normalized phrase -> intent name
}

func newDuplicatePhrases(state *checkState) *duplicatePhrases {
	return &duplicatePhrases{
		state:  state,
		owners: make(map[string]string),
	}
}

func (d *duplicatePhrases) VisitPhrase(intent *ast.Intent, phrase *ast.Phrase) error {
	key := d.state.normalizer.key(phrase.Text)
	if owner, ok := d.owners[key]; ok {
		d.state.report(Finding{
			Check:         CheckDuplicatePhrases,
			Code:          CodeDuplicatePhrase,
			Text:          key,
			Container:     intent.Name,
			PreviousOwner: owner,
			Location:      phrase.Location,
		})
	}
	d.owners[key] = intent.Name
	return nil
}

// duplicateEntities reports entity values and synonyms whose normalized
// text appears more than once across all entity types of the model.
//
// Values record the normalized entity type name as owner. Synonyms record
// the normalized value they belong to, so a later clash with a synonym
// names that value.
type duplicateEntities struct {
	ast.BaseVisitor
	state  *checkState
	owners map[string]string // normalized value or synonym -> owner
}

func newDuplicateEntities(state *checkState) *duplicateEntities {
	return &duplicateEntities{
		state:  state,
		owners: make(map[string]string),
	}
}

func (d *duplicateEntities) VisitEntityValue(entityType *ast.EntityType, value ast.EntityValue) error {
	key := d.state.normalizer.key(value.Raw())
	if owner, ok := d.owners[key]; ok {
		d.state.report(Finding{
			Check:         CheckDuplicateEntities,
			Code:          CodeDuplicateEntityValue,
			Text:          key,
			Container:     entityType.Name,
			PreviousOwner: owner,
			Location:      value.Loc(),
		})
	}
	d.owners[key] = d.state.normalizer.key(entityType.Name)
	return nil
}

func (d *duplicateEntities) VisitSynonym(entityType *ast.EntityType, parent *ast.StructuredValue, synonym *ast.Synonym) error {
	key := d.state.normalizer.key(synonym.Text)
	if owner, ok := d.owners[key]; ok {
		d.state.report(Finding{
			Check:         CheckDuplicateEntities,
			Code:          CodeDuplicateSynonym,
			Text:          key,
			Container:     entityType.Name,
			PreviousOwner: owner,
			Location:      synonym.Location,
		})
	}
	d.owners[key] = d.state.normalizer.key(parent.Value)
	return nil
}
