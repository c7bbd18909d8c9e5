// modellint checks the per-locale JSON language models of a voice or chat
// application for data-quality problems before they are deployed.
//
// It reports, for every locale:
//   - Phrases used by more than one intent
//   - Entity values and synonyms used more than once
//   - Phrases, values and synonyms with leading or trailing whitespace
//   - Unbalanced slot brackets in phrases
//
// Usage:
//
//	# Lint every model in ./models
//	modellint lint
//
//	# Lint two locales, failing on any warning
//	modellint lint de en --strict
//
//	# Re-lint whenever a model changes
//	modellint watch --listen 127.0.0.1:9464
//
//	# Show recorded runs
//	modellint history list
package main

func main() {
	Execute()
}
