// Package logging provides structured logging with request correlation and
// sensitive-data redaction.
//
// # Overview
//
// The package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Context-driven enrichers (CorrelationId, RequestId on every event)
//   - Pattern-based redaction of messages and string field values
//   - Level-aware sampling (errors never sampled)
//   - Optional dual output (stdout + OpenTelemetry bridge)
//   - An in-memory capture for test assertions
//
// # Usage
//
// Create a logger from config:
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.New(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
// Log with context; identifiers placed there by the middleware package are
// attached automatically:
//
//	ctx = logctx.WithCorrelationID(ctx, "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
//	logger.Info(ctx, "order processed", zap.Duration("duration", d))
//
// Output:
//
//	{
//	  "ts": "2026-08-26T10:15:30Z",
//	  "level": "info",
//	  "msg": "order processed",
//	  "CorrelationId": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
//	  "duration": "45ms"
//	}
//
// An event emitted outside any request still carries a CorrelationId (a
// fresh UUID is synthesized); it carries no RequestId.
//
// # Redaction
//
// Messages and string field values pass through the redact package's policy
// before persistence; matches become ***REDACTED***. Field names on the
// configured deny list are redacted wholesale. For values known sensitive
// at the call site use the helpers:
//
//	logger.Info(ctx, "auth received",
//	    logging.RedactedString("authorization", authHeader))
//
// # Configuration
//
// Config carries koanf tags. LoadConfig layers defaults, a YAML file, and
// CLYWELL_LOGGING_* environment variables, and validates eagerly: a
// malformed custom redaction pattern fails here, never on first use.
//
// # Testing
//
// Use TestLogger for assertions over captured events:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "payment accepted", zap.String("order", "ord-17"))
//	tl.ShouldHaveLogged(t, zapcore.InfoLevel)
//	tl.ShouldNotHaveLogged(t, zapcore.ErrorLevel)
//	tl.ShouldHaveProperty(t, "payment accepted", "order", "ord-17")
//
// # Concurrency Safety
//
// Logger, Capture, and the shared redaction policy are safe for concurrent
// use. Enrichers read only the call's context, so identifiers never leak
// between concurrently handled requests.
package logging
