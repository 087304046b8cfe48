package middleware

import (
	"context"
	"time"

	"github.com/clywell/clywell-logging/logging"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/clywell/clywell-logging/middleware"

// HTTPMetrics holds the HTTP request metrics instruments.
type HTTPMetrics struct {
	meter          metric.Meter
	logger         *logging.Logger
	requestsTotal  metric.Int64Counter
	requestDur     metric.Float64Histogram
	responseSize   metric.Int64Histogram
	activeRequests metric.Int64UpDownCounter
}

// NewHTTPMetrics creates the instruments on the global meter provider.
// Instrument creation failures are logged and the affected instrument is
// skipped; requests still flow.
func NewHTTPMetrics(logger *logging.Logger) *HTTPMetrics {
	m := &HTTPMetrics{
		meter:  otel.Meter(instrumentationName),
		logger: logger,
	}
	m.init()
	return m
}

func (m *HTTPMetrics) init() {
	ctx := context.Background()
	var err error

	m.requestsTotal, err = m.meter.Int64Counter(
		"clywell.http.requests_total",
		metric.WithDescription("Total HTTP requests labeled by method, endpoint, and status code."),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		m.warn(ctx, "failed to create requests counter", err)
	}

	m.requestDur, err = m.meter.Float64Histogram(
		"clywell.http.request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds, labeled by method, endpoint, and status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		m.warn(ctx, "failed to create duration histogram", err)
	}

	m.responseSize, err = m.meter.Int64Histogram(
		"clywell.http.response_size_bytes",
		metric.WithDescription("HTTP response body size in bytes, labeled by method, endpoint, and status."),
		metric.WithUnit("By"),
	)
	if err != nil {
		m.warn(ctx, "failed to create response size histogram", err)
	}

	m.activeRequests, err = m.meter.Int64UpDownCounter(
		"clywell.http.active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		m.warn(ctx, "failed to create active requests gauge", err)
	}
}

func (m *HTTPMetrics) warn(ctx context.Context, msg string, err error) {
	if m.logger != nil {
		m.logger.Warn(ctx, msg, zap.Error(err))
	}
}

// Middleware returns an Echo middleware that records HTTP metrics.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			ctx := req.Context()

			if m.activeRequests != nil {
				m.activeRequests.Add(ctx, 1)
			}

			err := next(c)

			duration := time.Since(start)
			attrs := []attribute.KeyValue{
				attribute.String("method", req.Method),
				attribute.String("endpoint", c.Path()),
				attribute.Int("status", c.Response().Status),
			}

			if m.requestsTotal != nil {
				m.requestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if m.requestDur != nil {
				m.requestDur.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
			}
			if m.responseSize != nil {
				m.responseSize.Record(ctx, c.Response().Size, metric.WithAttributes(attrs...))
			}
			if m.activeRequests != nil {
				m.activeRequests.Add(ctx, -1)
			}

			return err
		}
	}
}
