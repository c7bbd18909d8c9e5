package ast

// Visitor provides an interface for traversing a model.
// Implement this interface to analyze intents, phrases and entity values
// without re-implementing the iteration order.
type Visitor interface {
	VisitIntent(*Intent) error
	VisitPhrase(*Intent, *Phrase) error
	VisitEntityType(*EntityType) error
	VisitEntityValue(*EntityType, EntityValue) error
	VisitSynonym(*EntityType, *StructuredValue, *Synonym) error
}

// Walk traverses the model in document order and calls the visitor for each node.
// It returns the first error encountered, or nil if traversal completes.
func Walk(model *Model, visitor Visitor) error {
	for _, intent := range model.Intents {
		if err := visitor.VisitIntent(intent); err != nil {
			return err
		}
		for _, phrase := range intent.Phrases {
			if err := visitor.VisitPhrase(intent, phrase); err != nil {
				return err
			}
		}
	}

	for _, entityType := range model.EntityTypes {
		if err := visitor.VisitEntityType(entityType); err != nil {
			return err
		}
		for _, value := range entityType.Values {
			if err := visitor.VisitEntityValue(entityType, value); err != nil {
				return err
			}
			structured, ok := value.(*StructuredValue)
			if !ok {
				continue
			}
			for _, synonym := range structured.Synonyms {
				if err := visitor.VisitSynonym(entityType, structured, synonym); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// BaseVisitor implements Visitor with no-op methods.
// Embed it to override only the callbacks you need.
type BaseVisitor struct{}

func (BaseVisitor) VisitIntent(*Intent) error                                  { return nil }
func (BaseVisitor) VisitPhrase(*Intent, *Phrase) error                         { return nil }
func (BaseVisitor) VisitEntityType(*EntityType) error                          { return nil }
func (BaseVisitor) VisitEntityValue(*EntityType, EntityValue) error            { return nil }
func (BaseVisitor) VisitSynonym(*EntityType, *StructuredValue, *Synonym) error { return nil }
