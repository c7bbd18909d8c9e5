package cli

import (
	"errors"
	"fmt"
)

var (
	// ErrLocaleFailed reports that at least one locale could not be linted.
	ErrLocaleFailed = errors.New("one or more locales could not be linted")

	// ErrStrictWarnings reports warnings in strict mode.
	ErrStrictWarnings = errors.New("warnings found in strict mode")
)

// Process exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1 // failed locale, strict warnings or runtime failure
	ExitConfig = 2 // bad configuration, flags or arguments
)

// ConfigError is a problem with the configuration file, a flag or an
// argument. Field is the config path or flag name and may be empty.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config error: " + e.Message
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError returns a ConfigError for field.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// WrapConfigError returns a ConfigError for field caused by err.
func WrapConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Message: err.Error(), Cause: err}
}

// CommandError is a failure of a command after its configuration was
// accepted.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err as a failure of command.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// ExitCode maps the error returned by a command to the process exit code.
func ExitCode(err error) int {
	var cfgErr *ConfigError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &cfgErr):
		return ExitConfig
	default:
		return ExitFailed
	}
}
