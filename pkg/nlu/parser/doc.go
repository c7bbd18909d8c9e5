// Package parser loads per-locale language model files into typed AST nodes.
//
// Model files are JSON. The parser first checks the document with encoding/json so
// that syntax errors are reported exactly as a JSON reader would see them, then
// walks a gopkg.in/yaml.v3 node tree of the same bytes (JSON is valid YAML flow
// syntax). The node tree keeps the key order of "intents" and "entityTypes" and
// gives every phrase, value and synonym a line and column.
//
// # Basic Usage
//
//	p := parser.NewParser()
//	model, err := p.Parse("models/de.json")
//	if err != nil {
//	    // *errors.Error for I/O and syntax problems,
//	    // *errors.ErrorList for structural problems
//	    log.Fatal(err)
//	}
//
// # What Is Checked
//
// The parser only rejects shapes that cannot be turned into the typed model:
// non-object intents, phrases that are not strings, entity values that are neither
// a string nor an object with a string "value", and so on. It does not require the
// "intents" key; reporting a missing "intents" section is the validator's job.
// Unknown keys are ignored, and JSON null is treated like an absent optional key.
package parser
