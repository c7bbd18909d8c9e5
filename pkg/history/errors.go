package history

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by GetRun when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// StorageError wraps a failure of a history backend.
type StorageError struct {
	Backend   string // "memory", "sqlite" or "sqlite3"
	Operation string // "open", "save", "list", "get", "delete", "trim", ...
	Cause     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history %s failed (%s): %v", e.Operation, e.Backend, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError returns a StorageError for operation on backend.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}
