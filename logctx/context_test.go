package logctx

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()

	_, ok := CorrelationID(ctx)
	assert.False(t, ok, "fresh context must not carry a correlation ID")

	ctx = WithCorrelationID(ctx, "corr-1")
	id, ok := CorrelationID(ctx)
	require.True(t, ok)
	assert.Equal(t, "corr-1", id)

	// Later writes shadow earlier ones on the derived context only.
	child := WithCorrelationID(ctx, "corr-2")
	id, _ = CorrelationID(child)
	assert.Equal(t, "corr-2", id)
	id, _ = CorrelationID(ctx)
	assert.Equal(t, "corr-1", id)
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()

	_, ok := RequestID(ctx)
	assert.False(t, ok)

	ctx = WithRequestID(ctx, "req-1")
	id, ok := RequestID(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-1", id)
}

func TestSlotsAreIndependent(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "corr")

	_, ok := RequestID(ctx)
	assert.False(t, ok, "correlation slot must not leak into request slot")

	ctx = WithRequestID(ctx, "req")
	cid, _ := CorrelationID(ctx)
	rid, _ := RequestID(ctx)
	assert.Equal(t, "corr", cid)
	assert.Equal(t, "req", rid)
}

func TestEmptyIDPanics(t *testing.T) {
	assert.Panics(t, func() { WithCorrelationID(context.Background(), "") })
	assert.Panics(t, func() { WithRequestID(context.Background(), "") })
}

func TestNoLeakAcrossConcurrentRequests(t *testing.T) {
	// Each goroutine models one request with its own context; a value set in
	// one request tree must never be observable from a sibling.
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		id := string(rune('A' + i%26))
		go func() {
			defer wg.Done()
			ctx := WithCorrelationID(context.Background(), id)

			// Work spawned from the request inherits the value.
			done := make(chan string, 1)
			go func() {
				got, _ := CorrelationID(ctx)
				done <- got
			}()
			assert.Equal(t, id, <-done)

			got, ok := CorrelationID(ctx)
			require.True(t, ok)
			assert.Equal(t, id, got)
		}()
	}
	wg.Wait()
}
