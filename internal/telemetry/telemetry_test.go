package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "tradebook", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Enabled = false

	shutdown, err := Init(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Should be able to call shutdown without error
	err = shutdown(ctx)
	assert.NoError(t, err)

	// Should not be enabled
	assert.False(t, IsEnabled())
}

func TestTracerReturnsNoOp(t *testing.T) {
	// Reset state
	tracer = nil
	enabled = false

	// Without initialization, should return no-op tracer
	tr := Tracer()
	require.NotNil(t, tr)
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	// Even without initialization, StartSpan should work (no-op)
	newCtx, span := StartSpan(ctx, "test.operation")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)

	// Should be able to end the span
	span.End()
}

func TestSpanFromContext(t *testing.T) {
	ctx := context.Background()

	// Should return a span even without active span
	span := SpanFromContext(ctx)
	require.NotNil(t, span)
}

func TestAddEvent(t *testing.T) {
	ctx := context.Background()

	// Should not panic with no active span
	require.NotPanics(t, func() {
		AddEvent(ctx, "test.event")
	})
}

func TestRecordError(t *testing.T) {
	ctx := context.Background()

	// Should not panic with nil error
	require.NotPanics(t, func() {
		RecordError(ctx, nil)
	})

	// Should not panic with error
	require.NotPanics(t, func() {
		RecordError(ctx, errors.New("test error"))
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Ok, "success")
	})

	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Error, "failed")
	})
}

func TestSetAttributes(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetAttributes(ctx, ClientIP("192.168.1.1"))
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	traceID := TraceID(ctx)
	assert.Equal(t, "", traceID)
}

func TestSpanID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	spanID := SpanID(ctx)
	assert.Equal(t, "", spanID)
}

func TestAttributeHelpers(t *testing.T) {
	t.Run("ClientIP", func(t *testing.T) {
		attr := ClientIP("192.168.1.100")
		assert.Equal(t, AttrClientIP, string(attr.Key))
		assert.Equal(t, "192.168.1.100", attr.Value.AsString())
	})

	t.Run("ClientAddr", func(t *testing.T) {
		attr := ClientAddr("192.168.1.100:12345")
		assert.Equal(t, AttrClientAddr, string(attr.Key))
		assert.Equal(t, "192.168.1.100:12345", attr.Value.AsString())
	})

	t.Run("HTTPMethod", func(t *testing.T) {
		attr := HTTPMethod("POST")
		assert.Equal(t, AttrHTTPMethod, string(attr.Key))
		assert.Equal(t, "POST", attr.Value.AsString())
	})

	t.Run("HTTPRoute", func(t *testing.T) {
		attr := HTTPRoute("/api/v1/trades/{id}")
		assert.Equal(t, AttrHTTPRoute, string(attr.Key))
		assert.Equal(t, "/api/v1/trades/{id}", attr.Value.AsString())
	})

	t.Run("HTTPStatus", func(t *testing.T) {
		attr := HTTPStatus(201)
		assert.Equal(t, AttrHTTPStatus, string(attr.Key))
		assert.Equal(t, int64(201), attr.Value.AsInt64())
	})

	t.Run("UserID", func(t *testing.T) {
		attr := UserID(42)
		assert.Equal(t, AttrUserID, string(attr.Key))
		assert.Equal(t, int64(42), attr.Value.AsInt64())
	})

	t.Run("Username", func(t *testing.T) {
		attr := Username("alice")
		assert.Equal(t, AttrUsername, string(attr.Key))
		assert.Equal(t, "alice", attr.Value.AsString())
	})

	t.Run("DBSystem", func(t *testing.T) {
		attr := DBSystem("sqlite")
		assert.Equal(t, AttrDBSystem, string(attr.Key))
		assert.Equal(t, "sqlite", attr.Value.AsString())
	})

	t.Run("DBOperation", func(t *testing.T) {
		attr := DBOperation("migrate")
		assert.Equal(t, AttrDBOperation, string(attr.Key))
		assert.Equal(t, "migrate", attr.Value.AsString())
	})

	t.Run("TradeID", func(t *testing.T) {
		attr := TradeID(7)
		assert.Equal(t, AttrTradeID, string(attr.Key))
		assert.Equal(t, int64(7), attr.Value.AsInt64())
	})

	t.Run("Ticker", func(t *testing.T) {
		attr := Ticker("AAPL")
		assert.Equal(t, AttrTicker, string(attr.Key))
		assert.Equal(t, "AAPL", attr.Value.AsString())
	})

	t.Run("Side", func(t *testing.T) {
		attr := Side("buy")
		assert.Equal(t, AttrSide, string(attr.Key))
		assert.Equal(t, "buy", attr.Value.AsString())
	})

	t.Run("TradeStatus", func(t *testing.T) {
		attr := TradeStatus("closed")
		assert.Equal(t, AttrTradeStatus, string(attr.Key))
		assert.Equal(t, "closed", attr.Value.AsString())
	})

	t.Run("TradeCount", func(t *testing.T) {
		attr := TradeCount(12)
		assert.Equal(t, AttrTradeCount, string(attr.Key))
		assert.Equal(t, int64(12), attr.Value.AsInt64())
	})

	t.Run("MistakeCount", func(t *testing.T) {
		attr := MistakeCount(3)
		assert.Equal(t, AttrMistakeCount, string(attr.Key))
		assert.Equal(t, int64(3), attr.Value.AsInt64())
	})

	t.Run("StartupPolicy", func(t *testing.T) {
		attr := StartupPolicy("strict")
		assert.Equal(t, AttrStartupPolicy, string(attr.Key))
		assert.Equal(t, "strict", attr.Value.AsString())
	})
}

func TestStartStartupSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartStartupSpan(ctx, "migrate", "strict")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// With additional attributes
	newCtx2, span2 := StartStartupSpan(ctx, "serve", "tolerant", DBSystem("sqlite"))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestStartStoreSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartStoreSpan(ctx, "trade.list")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// With additional attributes
	newCtx2, span2 := StartStoreSpan(ctx, "migrate", DBSystem("postgres"))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestStartTradeSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartTradeSpan(ctx, "create", 1, Ticker("BTC-USD"), Side("buy"))
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	newCtx2, span2 := StartAnalyticsSpan(ctx, 1, TradeCount(10))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}
