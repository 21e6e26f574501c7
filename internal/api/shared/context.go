package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

const (
	// RequestIDKey is the key for the request ID in the request context
	RequestIDKey ContextKey = "requestID"

	// RequestIDHeader carries a caller-supplied request ID.
	RequestIDHeader = "X-Request-ID"
)

// NewRequestID returns a random 32-character hex identifier.
func NewRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
// If no request ID exists, it returns an empty string.
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
