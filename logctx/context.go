// logctx/context.go
package logctx

import (
	"context"
)

// Context key types
type correlationIDCtxKey struct{}
type requestIDCtxKey struct{}

// WithCorrelationID returns a context carrying the correlation ID.
// The value is visible to the call chain descending from the returned
// context and to nothing else; sibling requests each carry their own.
// Panics if id is empty.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		panic("logctx: correlation ID cannot be empty")
	}
	return context.WithValue(ctx, correlationIDCtxKey{}, id)
}

// CorrelationID extracts the correlation ID from the context. If no
// correlation ID has been set, ok is false.
func CorrelationID(ctx context.Context) (_ string, ok bool) {
	v, ok := ctx.Value(correlationIDCtxKey{}).(string)
	return v, ok
}

// WithRequestID returns a context carrying the request ID.
// Panics if id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		panic("logctx: request ID cannot be empty")
	}
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

// RequestID extracts the request ID from the context. If no request ID
// has been set, ok is false.
func RequestID(ctx context.Context) (_ string, ok bool) {
	v, ok := ctx.Value(requestIDCtxKey{}).(string)
	return v, ok
}
