// Package nlu provides the top-level API for linting conversational language models.
//
// A language model is a JSON document per locale with "intents" (each holding example
// "phrases") and optional "entityTypes" (each holding "values" with optional
// "synonyms"). The subpackages split the work:
//
//   - ast: typed model nodes with source locations
//   - errors: syntax, structural and I/O errors with context and suggestions
//   - parser: JSON model files to ast.Model
//   - validator: data-quality checks reporting Findings to a Sink
//
// # Quick Start
//
//	findings, err := nlu.LintFile("models/de.json", "de")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range findings {
//	    fmt.Fprintln(os.Stderr, f)
//	}
package nlu
