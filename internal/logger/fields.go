package logger

import "log/slog"

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so the journal's
// logs can be aggregated and queried uniformly.
const (
	// Request / client
	KeyRequestID  = "request_id"  // HTTP request ID for correlation
	KeyRemoteAddr = "remote_addr" // Client address
	KeyMethod     = "method"      // HTTP method
	KeyPath       = "path"        // HTTP path
	KeyStatus     = "status"      // HTTP status code

	// Identity
	KeyUsername = "username" // Authenticated username
	KeyUserID   = "user_id"  // User identifier

	// Journal domain
	KeyTicker   = "ticker"   // Trading symbol (AAPL, BTC-USD, ...)
	KeyTradeID  = "trade_id" // Trade identifier
	KeySide     = "side"     // Trade side: buy or sell
	KeyMistake  = "mistake"  // Mistake tag name
	KeyCategory = "category" // Mistake category

	// Startup / migration
	KeyPolicy  = "policy"  // Startup failure policy
	KeyStep    = "step"    // Sequencer step name
	KeyVersion = "version" // Schema migration version
	KeyDirty   = "dirty"   // Migration dirty flag

	// Operation metadata
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyDatabase   = "database"    // Database backend type
	KeyPort       = "port"        // Listening port
)

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Username returns a slog.Attr for the authenticated username
func Username(name string) slog.Attr {
	return slog.String(KeyUsername, name)
}

// Ticker returns a slog.Attr for a trading symbol
func Ticker(symbol string) slog.Attr {
	return slog.String(KeyTicker, symbol)
}

// TradeID returns a slog.Attr for a trade identifier
func TradeID(id uint) slog.Attr {
	return slog.Uint64(KeyTradeID, uint64(id))
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}
