// ABOUTME: Error taxonomy for habit operations.
// ABOUTME: Validation, not-found, and storage failures, all matchable with errors.Is/As.
package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input: empty names, bad import payloads.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyName is returned when a habit name is empty after trimming.
	ErrEmptyName = fmt.Errorf("%w: habit name is empty", ErrValidation)
	// ErrNotFound is returned when no habit matches an id or prefix.
	ErrNotFound = errors.New("habit not found")
	// ErrAmbiguous is returned when an id prefix matches several habits.
	ErrAmbiguous = errors.New("ambiguous habit id prefix")
	// ErrUnknownAction is returned by Dispatch for unregistered actions.
	ErrUnknownAction = errors.New("unknown action")
)

// StorageError reports a failed read or write of a persisted blob.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
