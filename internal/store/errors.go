package store

import (
	"errors"
	"fmt"
)

// Failure classes reported by Backend implementations.
var (
	// ErrConnRefused is returned when the store refused the connection.
	// It is the only failure the Client retries.
	ErrConnRefused = errors.New("store connection refused")

	// ErrTimeout is returned when a store call did not finish in time.
	// It is never retried.
	ErrTimeout = errors.New("store operation timed out")

	// ErrCircuitOpen is returned without contacting the backend while the
	// circuit breaker is open. It is never retried.
	ErrCircuitOpen = errors.New("store circuit breaker is open")
)

// IsRetryable reports whether err belongs to the retryable failure class.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConnRefused)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Operation string // The operation that failed (e.g., "cache_get", "get")
	Key       string // The key being accessed
	Attempts  int    // Attempts made before giving up
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %q failed after %d attempt(s): %v", e.Operation, e.Key, e.Attempts, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}
