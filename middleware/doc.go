// Package middleware provides Echo middleware for request identification
// and request-level observability.
//
// CorrelationID and RequestID each resolve an identifier from the inbound
// header (X-Correlation-ID / X-Request-ID), generating a UUID when it is
// absent or blank, then publish it three ways: on the request context (for
// the logging enrichers), on the response header, and in the echo.Context
// bag under "CorrelationId" / "RequestId" (for terminal stages).
//
// Register both before anything that logs; their relative order does not
// matter, they touch disjoint state. RequestLogger is a terminal stage
// that reads the bag:
//
//	e := echo.New()
//	e.Use(middleware.CorrelationID())
//	e.Use(middleware.RequestID())
//	e.Use(middleware.RequestLogger(logger))
//
// None of the middleware adds error handling: a downstream error is
// returned unchanged, and identifiers already mirrored onto the response
// stay there.
package middleware
