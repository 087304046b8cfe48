// logging/enrich.go
package logging

import (
	"context"

	"github.com/clywell/clywell-logging/logctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Log property names attached by the built-in enrichers. The exact casing
// is part of the wire contract with downstream log consumers.
const (
	CorrelationIDProperty = "CorrelationId"
	RequestIDProperty     = "RequestId"
)

// Enricher inspects the call's context and returns fields with additional
// properties appended. Enrichers never overwrite: an enricher must leave
// fields untouched when a same-named property is already present
// (first-writer-wins). Enrichers run on every log call and must be pure and
// safe for concurrent use.
type Enricher func(ctx context.Context, fields []zap.Field) []zap.Field

// CorrelationIDEnricher attaches the context's correlation ID under
// "CorrelationId". When the context carries none, a fresh UUID is
// synthesized so every log event carries a correlation ID, even outside a
// request.
func CorrelationIDEnricher() Enricher {
	return func(ctx context.Context, fields []zap.Field) []zap.Field {
		if hasField(fields, CorrelationIDProperty) {
			return fields
		}
		id, ok := logctx.CorrelationID(ctx)
		if !ok {
			id = uuid.NewString()
		}
		return append(fields, zap.String(CorrelationIDProperty, id))
	}
}

// RequestIDEnricher attaches the context's request ID under "RequestId".
// Unlike the correlation enricher it synthesizes nothing: an event emitted
// outside a request simply has no request ID.
func RequestIDEnricher() Enricher {
	return func(ctx context.Context, fields []zap.Field) []zap.Field {
		if hasField(fields, RequestIDProperty) {
			return fields
		}
		id, ok := logctx.RequestID(ctx)
		if !ok {
			return fields
		}
		return append(fields, zap.String(RequestIDProperty, id))
	}
}

// defaultEnrichers returns the enrichers every logger starts with.
func defaultEnrichers() []Enricher {
	return []Enricher{
		CorrelationIDEnricher(),
		RequestIDEnricher(),
	}
}

// hasField reports whether a field with the given key is already present.
func hasField(fields []zap.Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}
