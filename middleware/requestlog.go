package middleware

import (
	"time"

	"github.com/clywell/clywell-logging/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger returns terminal middleware that logs one line per
// completed request. Identifiers are read from the request bag populated
// by CorrelationID/RequestID, so this stage must be registered after both.
// Downstream errors are logged and returned unchanged. Panics if logger is
// nil.
func RequestLogger(logger *logging.Logger) echo.MiddlewareFunc {
	if logger == nil {
		panic("middleware: logger cannot be nil")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
			}
			if id, ok := c.Get(CorrelationIDBagKey).(string); ok {
				fields = append(fields, zap.String(logging.CorrelationIDProperty, id))
			}
			if id, ok := c.Get(RequestIDBagKey).(string); ok {
				fields = append(fields, zap.String(logging.RequestIDProperty, id))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}

			logger.Info(c.Request().Context(), "http request", fields...)

			return err
		}
	}
}
