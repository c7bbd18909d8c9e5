// Package validator checks language models for data-quality problems.
//
// Five independent checks run over a parsed model, always in this order:
//
//   - duplicate-phrases: the same phrase (trimmed, lower-cased) in two intents
//   - duplicate-entities: the same value or synonym used twice across entity types
//   - phrase-whitespace: phrases with leading or trailing white space
//   - entity-whitespace: values and synonyms with leading or trailing white space
//   - brackets: unbalanced {slot} brackets in phrases
//
// Problems are reported as Finding records to a Sink. Findings render to the
// familiar warning lines:
//
//	🔺 Warning: phrase 'test' is used in both intents 'AlphaIntent' and 'BetaIntent' in 'de' model.
//
// # Basic Usage
//
//	collector := validator.NewCollector()
//	if err := validator.NewValidator().Validate(model, "de", collector); err != nil {
//	    // structural problem, e.g. no "intents" section
//	}
//	for _, f := range collector.Findings() {
//	    fmt.Println(f)
//	}
//
// Every call builds fresh lookup maps, so validating the same model twice
// reports the same findings, and locales can be validated concurrently.
package validator
