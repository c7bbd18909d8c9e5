// Package ast provides the typed representation of a per-locale language model.
//
// A language model describes a conversational interface for one locale: intents with
// their example phrases, and entity types with their accepted values and synonyms.
// The parser converts the loosely typed JSON document into these nodes once, so the
// validator only ever works on typed data. All nodes keep their source location for
// precise reporting.
//
// # Core Types
//
// Model: Root node holding intents and (optionally) entity types
//
// Intent: Named user goal with ordered example phrases
//
// EntityType: Named category of values
//
// EntityValue: Either a BareValue (plain string) or a StructuredValue (value plus synonyms)
//
// Location: Source location (file, line, column)
//
// # Ordering
//
// Intents and entity types keep the key order of the source document. Phrases, values
// and synonyms keep their list order. Checks that report "first owner" semantics rely
// on this.
//
// # Optional Sections
//
// A nil Intents slice means the document has no "intents" key at all, while an empty
// non-nil slice means the key is present but empty. The same holds for EntityTypes,
// Intent.Phrases, EntityType.Values and StructuredValue.Synonyms.
//
// # Traversal
//
//	err := ast.Walk(model, myVisitor)
package ast
