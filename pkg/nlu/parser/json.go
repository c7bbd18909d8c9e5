package parser

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"mercator-hq/modellint/pkg/nlu/ast"
	nluErrors "mercator-hq/modellint/pkg/nlu/errors"
)

// Top-level keys understood by the parser.
const (
	KeyIntents     = "intents"
	KeyEntityTypes = "entityTypes"
)

// checkJSON verifies data is a single valid JSON document.
// On failure it returns the location of the offending byte.
func checkJSON(data []byte, sourcePath string) *nluErrors.Error {
	var raw json.RawMessage
	err := json.Unmarshal(data, &raw)
	if err == nil {
		return nil
	}

	location := ast.Location{File: sourcePath, Line: 1, Column: 1}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		// Offset counts the bytes read including the offending one.
		location = offsetToLocation(data, syntaxErr.Offset-1, sourcePath)
	}

	return &nluErrors.Error{
		Type:       nluErrors.ErrorTypeSyntax,
		Message:    fmt.Sprintf("JSON parsing failed: %v", err),
		Location:   location,
		Suggestion: "Check JSON syntax (commas, quotes, brackets)",
	}
}

// offsetToLocation converts a 0-based byte offset into a 1-based line and column.
func offsetToLocation(data []byte, offset int64, sourcePath string) ast.Location {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1
	column := len(prefix) - bytes.LastIndexByte(prefix, '\n')
	return ast.Location{File: sourcePath, Line: line, Column: column}
}

// decoder converts a yaml.v3 node tree of a JSON document into the typed model.
// It accumulates structural errors instead of stopping at the first one.
type decoder struct {
	file   string
	errors *nluErrors.ErrorList
}

func newDecoder(file string) *decoder {
	return &decoder{
		file:   file,
		errors: nluErrors.NewErrorList(),
	}
}

// location returns the source location of a node.
func (d *decoder) location(node *yaml.Node) ast.Location {
	if node == nil {
		return ast.Location{File: d.file}
	}
	return ast.Location{File: d.file, Line: node.Line, Column: node.Column}
}

func (d *decoder) fail(node *yaml.Node, format string, args ...any) {
	d.errors.AddError(nluErrors.ErrorTypeStructural, fmt.Sprintf(format, args...), d.location(node))
}

// decodeModel builds the model from the document root.
func (d *decoder) decodeModel(doc *yaml.Node) *ast.Model {
	model := &ast.Model{
		SourceFile: d.file,
		Location:   ast.Location{File: d.file, Line: 1, Column: 1},
	}

	root := doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			d.fail(doc, "Model file is empty")
			return model
		}
		root = doc.Content[0]
	}
	model.Location = d.location(root)

	if root.Kind != yaml.MappingNode {
		d.fail(root, "Model must be a JSON object, got %s", jsonKind(root))
		return model
	}

	forEachPair(root, func(key, value *yaml.Node) {
		model.Keys = appendUnique(model.Keys, key.Value)

		switch key.Value {
		case KeyIntents:
			model.Intents = d.decodeIntents(value)
		case KeyEntityTypes:
			model.EntityTypes = d.decodeEntityTypes(value)
		}
	})

	return model
}

// decodeIntents decodes the "intents" object. A null value counts as absent.
func (d *decoder) decodeIntents(node *yaml.Node) []*ast.Intent {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		d.fail(node, "'%s' must be an object, got %s", KeyIntents, jsonKind(node))
		return nil
	}

	intents := make([]*ast.Intent, 0, len(node.Content)/2)
	index := make(map[string]int)

	forEachPair(node, func(key, value *yaml.Node) {
		intent := d.decodeIntent(key, value)
		if i, ok := index[key.Value]; ok {
			// Later duplicates replace the value but keep the first position.
			intents[i] = intent
			return
		}
		index[key.Value] = len(intents)
		intents = append(intents, intent)
	})

	enumerationOrder(intents, func(i *ast.Intent) string { return i.Name })
	return intents
}

func (d *decoder) decodeIntent(key, node *yaml.Node) *ast.Intent {
	intent := &ast.Intent{
		Name:     key.Value,
		Location: d.location(key),
	}

	if node.Kind != yaml.MappingNode {
		d.fail(node, "Intent '%s' must be an object, got %s", key.Value, jsonKind(node))
		return intent
	}

	forEachPair(node, func(field, value *yaml.Node) {
		if field.Value != "phrases" {
			return
		}
		intent.Phrases = nil
		if isNull(value) {
			return
		}
		if value.Kind != yaml.SequenceNode {
			d.fail(value, "'phrases' of intent '%s' must be an array, got %s", key.Value, jsonKind(value))
			return
		}
		intent.Phrases = make([]*ast.Phrase, 0, len(value.Content))
		for _, item := range value.Content {
			if !isString(item) {
				d.fail(item, "Phrase in intent '%s' must be a string, got %s", key.Value, jsonKind(item))
				continue
			}
			intent.Phrases = append(intent.Phrases, &ast.Phrase{
				Text:     item.Value,
				Location: d.location(item),
			})
		}
	})

	return intent
}

// decodeEntityTypes decodes the "entityTypes" object. A null value counts as absent.
func (d *decoder) decodeEntityTypes(node *yaml.Node) []*ast.EntityType {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		d.fail(node, "'%s' must be an object, got %s", KeyEntityTypes, jsonKind(node))
		return nil
	}

	entityTypes := make([]*ast.EntityType, 0, len(node.Content)/2)
	index := make(map[string]int)

	forEachPair(node, func(key, value *yaml.Node) {
		entityType := d.decodeEntityType(key, value)
		if i, ok := index[key.Value]; ok {
			entityTypes[i] = entityType
			return
		}
		index[key.Value] = len(entityTypes)
		entityTypes = append(entityTypes, entityType)
	})

	enumerationOrder(entityTypes, func(e *ast.EntityType) string { return e.Name })
	return entityTypes
}

func (d *decoder) decodeEntityType(key, node *yaml.Node) *ast.EntityType {
	entityType := &ast.EntityType{
		Name:     key.Value,
		Location: d.location(key),
	}

	if node.Kind != yaml.MappingNode {
		d.fail(node, "Entity type '%s' must be an object, got %s", key.Value, jsonKind(node))
		return entityType
	}

	forEachPair(node, func(field, value *yaml.Node) {
		if field.Value != "values" {
			return
		}
		entityType.Values = nil
		if isNull(value) {
			return
		}
		if value.Kind != yaml.SequenceNode {
			d.fail(value, "'values' of entity type '%s' must be an array, got %s", key.Value, jsonKind(value))
			return
		}
		entityType.Values = make([]ast.EntityValue, 0, len(value.Content))
		for _, item := range value.Content {
			if v := d.decodeEntityValue(key.Value, item); v != nil {
				entityType.Values = append(entityType.Values, v)
			}
		}
	})

	return entityType
}

// decodeEntityValue decodes either a bare string or a {value, synonyms} object.
func (d *decoder) decodeEntityValue(entityType string, node *yaml.Node) ast.EntityValue {
	if isString(node) {
		return &ast.BareValue{Value: node.Value, Location: d.location(node)}
	}

	if node.Kind != yaml.MappingNode {
		d.fail(node, "Value of entity type '%s' must be a string or an object, got %s", entityType, jsonKind(node))
		return nil
	}

	value := &ast.StructuredValue{Location: d.location(node)}
	hasValue := false

	forEachPair(node, func(field, item *yaml.Node) {
		switch field.Value {
		case "value":
			if !isString(item) {
				d.fail(item, "'value' in entity type '%s' must be a string, got %s", entityType, jsonKind(item))
				return
			}
			value.Value = item.Value
			value.Location = d.location(item)
			hasValue = true

		case "synonyms":
			value.Synonyms = nil
			if isNull(item) {
				return
			}
			if item.Kind != yaml.SequenceNode {
				d.fail(item, "'synonyms' in entity type '%s' must be an array, got %s", entityType, jsonKind(item))
				return
			}
			value.Synonyms = make([]*ast.Synonym, 0, len(item.Content))
			for _, synonym := range item.Content {
				if !isString(synonym) {
					d.fail(synonym, "Synonym in entity type '%s' must be a string, got %s", entityType, jsonKind(synonym))
					continue
				}
				value.Synonyms = append(value.Synonyms, &ast.Synonym{
					Text:     synonym.Value,
					Location: d.location(synonym),
				})
			}
		}
	})

	if !hasValue {
		d.errors.AddErrorWithSuggestion(
			nluErrors.ErrorTypeStructural,
			fmt.Sprintf("Value object in entity type '%s' is missing 'value'", entityType),
			d.location(node),
			nluErrors.SuggestKey("value", mappingKeys(node)),
		)
		return nil
	}

	return value
}

// enumerationOrder sorts named items the way JavaScript enumerates object
// keys: array-index keys ascending first, then the rest in document order.
// Model files are written for JavaScript tooling and findings follow the
// order that tooling reports them in.
func enumerationOrder[T any](items []T, name func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		ia, aIndex := arrayIndex(name(a))
		ib, bIndex := arrayIndex(name(b))
		switch {
		case aIndex && bIndex:
			return cmp.Compare(ia, ib)
		case aIndex:
			return -1
		case bIndex:
			return 1
		}
		return 0
	})
}

// arrayIndex reports whether key is a canonical array index: decimal
// digits without a leading zero, below 2^32-1.
func arrayIndex(key string) (uint32, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

// forEachPair calls fn for each key/value pair of a mapping node in document order.
func forEachPair(node *yaml.Node, fn func(key, value *yaml.Node)) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		fn(node.Content[i], node.Content[i+1])
	}
}

func mappingKeys(node *yaml.Node) []string {
	var keys []string
	forEachPair(node, func(key, _ *yaml.Node) {
		keys = append(keys, key.Value)
	})
	return keys
}

func appendUnique(keys []string, key string) []string {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func isString(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
}

// jsonKind names the JSON type of a node for error messages.
func jsonKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "array"
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!str":
			return "string"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		}
	}
	return "unknown"
}
