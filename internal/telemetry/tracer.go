package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for journal operations.
// These follow OpenTelemetry semantic conventions where applicable.
// Domain-specific keys use a "journal." prefix.
const (
	// ========================================================================
	// Client attributes
	// ========================================================================
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"

	// ========================================================================
	// HTTP attributes
	// ========================================================================
	AttrHTTPMethod = "http.request.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.response.status_code"

	// ========================================================================
	// User/Auth attributes
	// ========================================================================
	AttrUserID   = "user.id"
	AttrUsername = "user.name"
	AttrAuth     = "auth.method"

	// ========================================================================
	// Database attributes
	// ========================================================================
	AttrDBSystem    = "db.system"    // sqlite, postgres
	AttrDBOperation = "db.operation" // select, insert, migrate, ...
	AttrDBTable     = "db.table"

	// ========================================================================
	// Journal domain attributes
	// ========================================================================
	AttrTradeID      = "journal.trade_id"
	AttrTicker       = "journal.ticker"
	AttrSide         = "journal.side"
	AttrTradeStatus  = "journal.status" // open, closed
	AttrTradeCount   = "journal.trade_count"
	AttrMistakeCount = "journal.mistake_count"

	// ========================================================================
	// Startup sequencer attributes
	// ========================================================================
	AttrStartupPolicy = "startup.policy"
	AttrStartupStep   = "startup.step"
)

// Span names for operations.
// Format: <component>.<operation>
const (
	// ========================================================================
	// Startup sequencer spans
	// ========================================================================
	SpanStartupRun     = "startup.run"
	SpanStartupMigrate = "startup.migrate"
	SpanStartupServe   = "startup.serve"

	// ========================================================================
	// Store spans
	// ========================================================================
	SpanDBMigrate       = "db.migrate"
	SpanStoreTradeList  = "store.trade.list"
	SpanStoreTradeWrite = "store.trade.write"

	// ========================================================================
	// Journal API spans
	// ========================================================================
	SpanAuthSignup      = "auth.signup"
	SpanAuthLogin       = "auth.login"
	SpanAuthRefresh     = "auth.refresh"
	SpanTradeCreate     = "journal.trade.create"
	SpanTradeList       = "journal.trade.list"
	SpanTradeGet        = "journal.trade.get"
	SpanTradeUpdate     = "journal.trade.update"
	SpanTradeDelete     = "journal.trade.delete"
	SpanTradeMistakes   = "journal.trade.mistakes"
	SpanAnalyticsReport = "journal.analytics.report"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for full client address
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// HTTPMethod returns an attribute for HTTP request method
func HTTPMethod(method string) attribute.KeyValue {
	return attribute.String(AttrHTTPMethod, method)
}

// HTTPRoute returns an attribute for the matched route pattern
func HTTPRoute(route string) attribute.KeyValue {
	return attribute.String(AttrHTTPRoute, route)
}

// HTTPStatus returns an attribute for HTTP response status code
func HTTPStatus(status int) attribute.KeyValue {
	return attribute.Int(AttrHTTPStatus, status)
}

// UserID returns an attribute for user ID
func UserID(id uint) attribute.KeyValue {
	return attribute.Int64(AttrUserID, int64(id))
}

// Username returns an attribute for username
func Username(name string) attribute.KeyValue {
	return attribute.String(AttrUsername, name)
}

// AuthMethod returns an attribute for authentication method
func AuthMethod(method string) attribute.KeyValue {
	return attribute.String(AttrAuth, method)
}

// DBSystem returns an attribute for database driver name
func DBSystem(system string) attribute.KeyValue {
	return attribute.String(AttrDBSystem, system)
}

// DBOperation returns an attribute for database operation name
func DBOperation(op string) attribute.KeyValue {
	return attribute.String(AttrDBOperation, op)
}

// DBTable returns an attribute for database table name
func DBTable(table string) attribute.KeyValue {
	return attribute.String(AttrDBTable, table)
}

// TradeID returns an attribute for trade ID
func TradeID(id uint) attribute.KeyValue {
	return attribute.Int64(AttrTradeID, int64(id))
}

// Ticker returns an attribute for symbol ticker
func Ticker(ticker string) attribute.KeyValue {
	return attribute.String(AttrTicker, ticker)
}

// Side returns an attribute for trade side (buy/sell)
func Side(side string) attribute.KeyValue {
	return attribute.String(AttrSide, side)
}

// TradeStatus returns an attribute for trade status (open/closed)
func TradeStatus(status string) attribute.KeyValue {
	return attribute.String(AttrTradeStatus, status)
}

// TradeCount returns an attribute for number of trades in scope
func TradeCount(n int) attribute.KeyValue {
	return attribute.Int(AttrTradeCount, n)
}

// MistakeCount returns an attribute for number of tagged mistakes
func MistakeCount(n int) attribute.KeyValue {
	return attribute.Int(AttrMistakeCount, n)
}

// StartupPolicy returns an attribute for the startup failure policy
func StartupPolicy(policy string) attribute.KeyValue {
	return attribute.String(AttrStartupPolicy, policy)
}

// StartupStep returns an attribute for the current startup step
func StartupStep(step string) attribute.KeyValue {
	return attribute.String(AttrStartupStep, step)
}

// StartStartupSpan starts a span for a startup sequencer step.
// This is a convenience function that sets common attributes.
func StartStartupSpan(ctx context.Context, step, policy string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		StartupStep(step),
		StartupPolicy(policy),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "startup."+step, trace.WithAttributes(allAttrs...))
}

// StartStoreSpan starts a span for a journal store operation.
func StartStoreSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		DBOperation(operation),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "store."+operation, trace.WithAttributes(allAttrs...))
}

// StartTradeSpan starts a span for a trade operation.
func StartTradeSpan(ctx context.Context, operation string, userID uint, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		UserID(userID),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "journal.trade."+operation, trace.WithAttributes(allAttrs...))
}

// StartAnalyticsSpan starts a span for an analytics computation.
func StartAnalyticsSpan(ctx context.Context, userID uint, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		UserID(userID),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, SpanAnalyticsReport, trace.WithAttributes(allAttrs...))
}
