// Package config provides configuration management for modellint.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. A configuration file is
// optional: every field has a sensible default.
//
// # Configuration Loading
//
// Configuration can be loaded in three ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("modellint.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("modellint.yaml")
//
//  3. From defaults (empty path) or a file, with environment overrides:
//     cfg, err := config.Load(path)
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention MODELLINT_SECTION_FIELD.
// For example:
//
//   - MODELLINT_MODELS_DIR overrides models.dir
//   - MODELLINT_MODELS_LOCALES overrides models.locales (comma-separated)
//   - MODELLINT_LINT_STRICT overrides lint.strict
//   - MODELLINT_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Overrides are applied on top of the file and before validation. Values
// that do not parse, such as MODELLINT_LINT_CONCURRENCY=many, are ignored.
//
// # Validation
//
// Field rules are declared as struct tags and checked with
// github.com/go-playground/validator/v10. Locales must be valid BCP 47 tags;
// cron expressions are parsed with github.com/robfig/cron/v3. Errors carry
// the YAML path of the field:
//
//	configuration validation failed: 2 invalid fields: lint.format: must be
//	one of: text, json, csv (got "xml"); models.locales[1]: "de_DE!" is not
//	a valid locale (BCP 47 language tag)
//
// # Example Configuration
//
//	models:
//	  dir: "models"
//	  locales: ["de", "en"]
//
//	lint:
//	  strict: true
//	  format: "text"
//	  concurrency: 4
//	  disabled_checks: ["brackets"]
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "console"
//	  metrics:
//	    enabled: true
//	    textfile: "/var/lib/node_exporter/modellint.prom"
//
//	history:
//	  enabled: true
//	  driver: "sqlite"
//	  path: ".modellint/history.db"
//	  retention_days: 30
//
//	watch:
//	  debounce: "250ms"
//	  schedule: "*/15 * * * *"
package config
