package middleware

import (
	"strings"

	"github.com/clywell/clywell-logging/logctx"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXCorrelationID is the header the correlation ID travels in, both
// inbound and on the response.
const HeaderXCorrelationID = "X-Correlation-ID"

// CorrelationIDBagKey is the echo.Context key the resolved correlation ID
// is stored under, so terminal stages can read it without touching the
// request context.
const CorrelationIDBagKey = "CorrelationId"

// CorrelationIDConfig configures the correlation-ID middleware.
type CorrelationIDConfig struct {
	// Generator produces an identifier when the inbound request carries
	// none. Defaults to uuid.NewString.
	Generator func() string
}

// DefaultCorrelationIDConfig is the config used by CorrelationID().
var DefaultCorrelationIDConfig = CorrelationIDConfig{
	Generator: uuid.NewString,
}

// CorrelationID returns middleware that resolves the request's correlation
// ID with the default config.
func CorrelationID() echo.MiddlewareFunc {
	return CorrelationIDWithConfig(DefaultCorrelationIDConfig)
}

// CorrelationIDWithConfig returns middleware that reads X-Correlation-ID
// from the inbound request (generating a UUID when absent or blank),
// publishes it on the request context, mirrors it onto the response header,
// and stores it in the request bag. Downstream errors pass through
// unchanged.
func CorrelationIDWithConfig(config CorrelationIDConfig) echo.MiddlewareFunc {
	if config.Generator == nil {
		config.Generator = DefaultCorrelationIDConfig.Generator
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := strings.TrimSpace(req.Header.Get(HeaderXCorrelationID))
			if id == "" {
				id = config.Generator()
			}

			c.SetRequest(req.WithContext(logctx.WithCorrelationID(req.Context(), id)))
			c.Response().Header().Set(HeaderXCorrelationID, id)
			c.Set(CorrelationIDBagKey, id)

			return next(c)
		}
	}
}
