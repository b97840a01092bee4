package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects logger output to a buffer for testing.
// Returns the buffer and a cleanup function to restore original output.
func captureOutput() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	originalColor := useColor
	output = buf
	useColor = false // Disable colors for easier testing
	mu.Unlock()

	reconfigure()

	cleanup := func() {
		mu.Lock()
		output = originalOutput
		useColor = originalColor
		mu.Unlock()
		reconfigure()
	}

	return buf, cleanup
}

func TestLevelFiltering(t *testing.T) {
	t.Run("DebugLevelShowsAllMessages", func(t *testing.T) {
		buf, cleanup := captureOutput()
		defer cleanup()

		SetLevel("DEBUG")

		Debug("debug message")
		Info("info message")
		Warn("warn message")
		Error("error message")

		out := buf.String()
		assert.Contains(t, out, "debug message")
		assert.Contains(t, out, "info message")
		assert.Contains(t, out, "warn message")
		assert.Contains(t, out, "error message")
	})

	t.Run("InfoLevelFiltersDebug", func(t *testing.T) {
		buf, cleanup := captureOutput()
		defer cleanup()

		SetLevel("INFO")

		Debug("debug message")
		Info("info message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.Contains(t, out, "info message")
	})

	t.Run("ErrorLevelFiltersLower", func(t *testing.T) {
		buf, cleanup := captureOutput()
		defer cleanup()

		SetLevel("ERROR")

		Debug("debug message")
		Info("info message")
		Warn("warn message")
		Error("error message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.NotContains(t, out, "warn message")
		assert.Contains(t, out, "error message")
	})

	t.Run("InvalidLevelIgnored", func(t *testing.T) {
		SetLevel("INFO")
		SetLevel("BOGUS")
		assert.Equal(t, LevelInfo, GetLevel())
	})
}

func TestJSONFormat(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("INFO")
	SetFormat("json")
	defer SetFormat("text")

	Info("trade recorded", KeyTicker, "AAPL", KeySide, "buy")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trade recorded", entry["msg"])
	assert.Equal(t, "AAPL", entry[KeyTicker])
	assert.Equal(t, "buy", entry[KeySide])
}

func TestTextFormatFields(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("INFO")
	SetFormat("text")

	Info("migrations applied", KeyVersion, 3, KeyDirty, false)

	out := buf.String()
	assert.Contains(t, out, "migrations applied")
	assert.Contains(t, out, "version=3")
	assert.Contains(t, out, "dirty=false")
}

func TestContextFields(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("INFO")
	SetFormat("text")

	lc := NewLogContext("10.0.0.5").WithUsername("alice").WithRequestID("req-1")
	ctx := WithContext(context.Background(), lc)

	InfoCtx(ctx, "trade created", KeyTicker, "BTC-USD")

	out := buf.String()
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "username=alice")
	assert.Contains(t, out, "remote_addr=10.0.0.5")
	assert.Contains(t, out, "ticker=BTC-USD")
}

func TestFromContextMissing(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	assert.Nil(t, FromContext(nil))
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
	}
	for level, want := range cases {
		assert.Equal(t, want, level.String())
	}
}

func TestErrAttr(t *testing.T) {
	attr := Err(nil)
	assert.True(t, attr.Equal(Err(nil)))

	buf, cleanup := captureOutput()
	defer cleanup()
	SetLevel("INFO")
	SetFormat("text")

	Error("migration failed", "error", assert.AnError)
	assert.True(t, strings.Contains(buf.String(), "error="))
}
