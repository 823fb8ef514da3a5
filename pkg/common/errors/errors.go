// Package errors defines the error values shared across goasync packages.
package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the goasync library

var (
	// ErrAlreadyResolved indicates an attempt to resolve a future that
	// already reached a terminal state
	ErrAlreadyResolved = errors.New("future already resolved")

	// ErrCancelled indicates that a future was cancelled before producing
	// a result
	ErrCancelled = errors.New("future cancelled")

	// ErrTimeout indicates that a wait elapsed before the future reached
	// a terminal state
	ErrTimeout = errors.New("operation timed out")

	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsTerminal reports whether err describes an outcome of a future that
// can no longer change: a completed resolution conflict or cancellation.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrAlreadyResolved) || errors.Is(err, ErrCancelled)
}

// ResolutionError reports a rejected state transition on a future,
// carrying the operation attempted and the state that rejected it.
type ResolutionError struct {
	Op    string // "SetResult", "SetError", ...
	State string // state at the time of the attempt
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("future: %s rejected in state %s", e.Op, e.State)
}

// Unwrap allows errors.Is(err, ErrAlreadyResolved) to match.
func (e *ResolutionError) Unwrap() error {
	return ErrAlreadyResolved
}
