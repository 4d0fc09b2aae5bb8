// Package requestid threads a per-request correlation ID through contexts.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

var key contextKey

// New returns a fresh random ID (UUID v4).
func New() string { return uuid.NewString() }

// WithRequestID attaches id to the context.
func WithRequestID(parent context.Context, id string) context.Context {
	return context.WithValue(parent, key, id)
}

// FromContext returns the attached ID, or "" when the context has none,
// as is the case for logs emitted outside a request.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(key).(string); ok {
		return id
	}
	return ""
}
