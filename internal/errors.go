package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means an update/delete target could not be resolved by
	// the backend that owns it. It is surfaced, never retried.
	ErrNotFound = errors.New("event not found")

	// ErrInvalidInput means a draft failed validation before any backend
	// was reached.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccessDenied means the access prompt resolved to denied. Reads
	// and writes keep working through the local backend.
	ErrAccessDenied = errors.New("calendar access denied")
)

// BackendError wraps a store I/O failure so callers can tell it apart
// from domain errors while still unwrapping the cause.
type BackendError struct {
	Source Source
	Op     string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %s: %v", e.Source, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError keeps ErrNotFound transparent: a backend reporting a
// missing record must surface as ErrNotFound, not as an I/O failure.
func NewBackendError(source Source, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &BackendError{Source: source, Op: op, Err: err}
}
