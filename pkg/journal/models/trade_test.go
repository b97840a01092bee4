package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func closedTrade(side Side, entry, exit string) *Trade {
	exitPrice := dec(exit)
	entryAt := time.Now().Add(-2 * time.Hour)
	exitAt := time.Now().Add(-time.Hour)
	return &Trade{
		Side:       side,
		Quantity:   dec("10"),
		EntryPrice: dec(entry),
		EntryAt:    entryAt,
		ExitPrice:  &exitPrice,
		ExitAt:     &exitAt,
	}
}

func TestPnL(t *testing.T) {
	t.Run("LongProfit", func(t *testing.T) {
		pnl := closedTrade(SideBuy, "100", "110").PnL()
		require.NotNil(t, pnl)
		assert.True(t, pnl.Equal(dec("100")), "got %s", pnl)
	})

	t.Run("LongLoss", func(t *testing.T) {
		pnl := closedTrade(SideBuy, "100", "95.5").PnL()
		require.NotNil(t, pnl)
		assert.True(t, pnl.Equal(dec("-45")), "got %s", pnl)
	})

	t.Run("ShortProfit", func(t *testing.T) {
		pnl := closedTrade(SideSell, "100", "90").PnL()
		require.NotNil(t, pnl)
		assert.True(t, pnl.Equal(dec("100")), "got %s", pnl)
	})

	t.Run("OpenTradeHasNoPnL", func(t *testing.T) {
		trade := &Trade{
			Side:       SideBuy,
			Quantity:   dec("1"),
			EntryPrice: dec("100"),
			EntryAt:    time.Now().Add(-time.Hour),
		}
		assert.Nil(t, trade.PnL())
		assert.False(t, trade.IsClosed())
	})

	t.Run("FractionalQuantity", func(t *testing.T) {
		trade := closedTrade(SideBuy, "30000", "31000")
		trade.Quantity = dec("0.25")
		pnl := trade.PnL()
		require.NotNil(t, pnl)
		assert.True(t, pnl.Equal(dec("250")), "got %s", pnl)
	})
}

func TestIsWin(t *testing.T) {
	assert.True(t, closedTrade(SideBuy, "100", "101").IsWin())
	assert.False(t, closedTrade(SideBuy, "100", "99").IsWin())
	assert.True(t, closedTrade(SideSell, "100", "99").IsWin())
	assert.False(t, closedTrade(SideSell, "100", "101").IsWin())
	assert.False(t, closedTrade(SideBuy, "100", "100").IsWin(), "break-even is not a win")

	open := &Trade{Side: SideBuy, Quantity: dec("1"), EntryPrice: dec("100"), EntryAt: time.Now()}
	assert.False(t, open.IsWin())
}

func TestTradeValidate(t *testing.T) {
	valid := func() *Trade { return closedTrade(SideBuy, "100", "110") }

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("InvalidSide", func(t *testing.T) {
		trade := valid()
		trade.Side = "hold"
		assert.Error(t, trade.Validate())
	})

	t.Run("FutureEntry", func(t *testing.T) {
		trade := valid()
		trade.EntryAt = time.Now().Add(time.Hour)
		assert.ErrorContains(t, trade.Validate(), "future")
	})

	t.Run("EntryWithinGraceAccepted", func(t *testing.T) {
		trade := &Trade{
			Side:       SideBuy,
			Quantity:   dec("1"),
			EntryPrice: dec("100"),
			EntryAt:    time.Now().Add(30 * time.Second),
		}
		assert.NoError(t, trade.Validate())
	})

	t.Run("ExitBeforeEntry", func(t *testing.T) {
		trade := valid()
		early := trade.EntryAt.Add(-time.Hour)
		trade.ExitAt = &early
		assert.ErrorContains(t, trade.Validate(), "before entry")
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		trade := valid()
		trade.Quantity = decimal.Zero
		assert.ErrorContains(t, trade.Validate(), "quantity")
	})

	t.Run("NegativeEntryPrice", func(t *testing.T) {
		trade := valid()
		trade.EntryPrice = dec("-1")
		assert.ErrorContains(t, trade.Validate(), "entry price")
	})

	t.Run("ExitPriceWithoutExitTime", func(t *testing.T) {
		trade := valid()
		trade.ExitAt = nil
		assert.ErrorContains(t, trade.Validate(), "together")
	})

	t.Run("ExitTimeWithoutExitPrice", func(t *testing.T) {
		trade := valid()
		trade.ExitPrice = nil
		assert.ErrorContains(t, trade.Validate(), "together")
	})

	t.Run("MissingEntryTime", func(t *testing.T) {
		trade := valid()
		trade.EntryAt = time.Time{}
		assert.ErrorContains(t, trade.Validate(), "entry time is required")
	})
}

func TestNormalizeTicker(t *testing.T) {
	got, err := NormalizeTicker("  aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got)

	got, err = NormalizeTicker("btc-usd")
	require.NoError(t, err)
	assert.Equal(t, "BTC-USD", got)

	_, err = NormalizeTicker("")
	assert.Error(t, err)

	_, err = NormalizeTicker("TOOLONGTOOLONGTOOLONGX")
	assert.Error(t, err)

	_, err = NormalizeTicker("EUR/USD")
	assert.Error(t, err, "slash is not allowed in stored tickers")
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, SideBuy.IsValid())
	assert.True(t, SideSell.IsValid())
	assert.False(t, Side("long").IsValid())

	assert.True(t, AssetCrypto.IsValid())
	assert.False(t, AssetType("bond").IsValid())

	assert.True(t, CategoryPsychology.IsValid())
	assert.False(t, MistakeCategory("timing").IsValid())
}

func TestMistakeCatalogConsistency(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range MistakeCatalog {
		assert.False(t, seen[m.Name], "duplicate catalog entry %q", m.Name)
		seen[m.Name] = true
		assert.True(t, m.Category.IsValid(), "catalog entry %q has invalid category", m.Name)
	}

	// Every emotional mistake must exist in the catalog, or the emotion
	// analysis would silently match nothing.
	for _, name := range EmotionalMistakes {
		assert.True(t, seen[name], "emotional mistake %q missing from catalog", name)
	}
}
