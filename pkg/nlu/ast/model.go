package ast

// Model represents the root node of a per-locale language model.
type Model struct {
	Intents     []*Intent     // Intents in document order; nil when "intents" is absent
	EntityTypes []*EntityType // Entity types in document order; nil when "entityTypes" is absent
	Keys        []string      // All top-level keys in document order

	// Source tracking
	SourceFile string   // Path to the model file
	Location   Location // Source location
}

// HasIntents returns true if the document defines an "intents" section.
func (m *Model) HasIntents() bool {
	return m.Intents != nil
}

// HasEntityTypes returns true if the document defines an "entityTypes" section.
func (m *Model) HasEntityTypes() bool {
	return m.EntityTypes != nil
}

// GetIntent returns the intent with the given name, or nil if not found.
func (m *Model) GetIntent(name string) *Intent {
	for _, intent := range m.Intents {
		if intent.Name == name {
			return intent
		}
	}
	return nil
}

// GetEntityType returns the entity type with the given name, or nil if not found.
func (m *Model) GetEntityType(name string) *EntityType {
	for _, entityType := range m.EntityTypes {
		if entityType.Name == name {
			return entityType
		}
	}
	return nil
}

// PhraseCount returns the total number of phrases across all intents.
func (m *Model) PhraseCount() int {
	count := 0
	for _, intent := range m.Intents {
		count += len(intent.Phrases)
	}
	return count
}

// Intent represents a named user goal with its example phrases.
type Intent struct {
	Name     string    // Intent name (the key in the "intents" object)
	Phrases  []*Phrase // Example phrases; nil when "phrases" is absent
	Location Location  // Source location of the intent key
}

// Phrase is a single example utterance, possibly containing {slot} placeholders.
type Phrase struct {
	Text     string   // Raw phrase text as written in the model
	Location Location // Source location
}

// EntityType represents a named category of recognizable values.
type EntityType struct {
	Name     string        // Entity type name (the key in the "entityTypes" object)
	Values   []EntityValue // Accepted values; nil when "values" is absent
	Location Location      // Source location of the entity type key
}

// EntityValue is one accepted value of an entity type.
// It is implemented by *BareValue and *StructuredValue only.
type EntityValue interface {
	// Raw returns the value text as written in the model.
	Raw() string

	// Loc returns the source location of the value.
	Loc() Location

	entityValue()
}

// BareValue is an entity value written as a plain string.
type BareValue struct {
	Value    string
	Location Location
}

// Raw returns the value text.
func (v *BareValue) Raw() string { return v.Value }

// Loc returns the source location.
func (v *BareValue) Loc() Location { return v.Location }

func (*BareValue) entityValue() {}

// StructuredValue is an entity value written as an object with "value" and "synonyms".
type StructuredValue struct {
	Value    string     // The canonical value
	Synonyms []*Synonym // Alternate strings; nil when "synonyms" is absent
	Location Location
}

// Raw returns the canonical value text.
func (v *StructuredValue) Raw() string { return v.Value }

// Loc returns the source location.
func (v *StructuredValue) Loc() Location { return v.Location }

func (*StructuredValue) entityValue() {}

// Synonym is an alternate string that resolves to the parent value.
type Synonym struct {
	Text     string
	Location Location
}
