package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clywell/clywell-logging/logctx"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDPropagatesInboundHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXCorrelationID, "corr-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := CorrelationID()(func(c echo.Context) error {
		id, ok := logctx.CorrelationID(c.Request().Context())
		require.True(t, ok)
		seen = id
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, h(c))
	assert.Equal(t, "corr-123", seen)
	assert.Equal(t, "corr-123", rec.Header().Get(HeaderXCorrelationID))
	assert.Equal(t, "corr-123", c.Get(CorrelationIDBagKey))
}

func TestCorrelationIDGeneratesWhenAbsent(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"blank header", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderXCorrelationID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := CorrelationID()(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			require.NoError(t, h(c))

			generated := rec.Header().Get(HeaderXCorrelationID)
			require.NotEmpty(t, generated)
			_, err := uuid.Parse(generated)
			assert.NoError(t, err, "generated ID is a UUID")
			assert.Equal(t, generated, c.Get(CorrelationIDBagKey))
		})
	}
}

func TestCorrelationIDCustomGenerator(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := CorrelationIDWithConfig(CorrelationIDConfig{
		Generator: func() string { return "fixed-id" },
	})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, h(c))
	assert.Equal(t, "fixed-id", rec.Header().Get(HeaderXCorrelationID))
}

func TestCorrelationIDErrorPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXCorrelationID, "corr-err")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	boom := errors.New("downstream failure")
	h := CorrelationID()(func(c echo.Context) error {
		return boom
	})

	err := h(c)
	assert.Same(t, boom, err, "downstream error returned unchanged")
	assert.Equal(t, "corr-err", rec.Header().Get(HeaderXCorrelationID),
		"header already set stays set")
}
