package middleware

import (
	"strings"

	"github.com/clywell/clywell-logging/logctx"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header the request ID travels in, both inbound
// and on the response.
const HeaderXRequestID = "X-Request-ID"

// RequestIDBagKey is the echo.Context key the resolved request ID is
// stored under.
const RequestIDBagKey = "RequestId"

// RequestIDConfig configures the request-ID middleware.
type RequestIDConfig struct {
	// Generator produces an identifier when the inbound request carries
	// none. Defaults to uuid.NewString.
	Generator func() string
}

// DefaultRequestIDConfig is the config used by RequestID().
var DefaultRequestIDConfig = RequestIDConfig{
	Generator: uuid.NewString,
}

// RequestID returns middleware that resolves the request's ID with the
// default config.
func RequestID() echo.MiddlewareFunc {
	return RequestIDWithConfig(DefaultRequestIDConfig)
}

// RequestIDWithConfig returns middleware that reads X-Request-ID from the
// inbound request (generating a UUID when absent or blank), publishes it on
// the request context, mirrors it onto the response header, and stores it
// in the request bag. Downstream errors pass through unchanged.
func RequestIDWithConfig(config RequestIDConfig) echo.MiddlewareFunc {
	if config.Generator == nil {
		config.Generator = DefaultRequestIDConfig.Generator
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := strings.TrimSpace(req.Header.Get(HeaderXRequestID))
			if id == "" {
				id = config.Generator()
			}

			c.SetRequest(req.WithContext(logctx.WithRequestID(req.Context(), id)))
			c.Response().Header().Set(HeaderXRequestID, id)
			c.Set(RequestIDBagKey, id)

			return next(c)
		}
	}
}
