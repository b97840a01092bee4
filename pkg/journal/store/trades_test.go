package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedTrade inserts a trade for the user. exit may be empty for open trades.
func seedTrade(t *testing.T, s *GORMStore, userID uint, ticker string, side models.Side, entryAt time.Time, entry, exit string) *models.Trade {
	t.Helper()
	ctx := context.Background()

	sym, err := s.GetOrCreateSymbol(ctx, ticker, models.AssetStock)
	require.NoError(t, err)

	trade := &models.Trade{
		SymbolID:   sym.ID,
		Side:       side,
		Quantity:   dec("10"),
		EntryPrice: dec(entry),
		EntryAt:    entryAt,
	}
	if exit != "" {
		price := dec(exit)
		exitAt := entryAt.Add(time.Hour)
		trade.ExitPrice = &price
		trade.ExitAt = &exitAt
	}

	require.NoError(t, s.CreateTrade(ctx, userID, trade))
	return trade
}

func TestTradeCRUD(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, "alice", "", "password1")
	require.NoError(t, err)
	bob, err := s.CreateUser(ctx, "bob", "", "password2")
	require.NoError(t, err)

	entryAt := time.Now().Add(-24 * time.Hour)
	trade := seedTrade(t, s, alice.ID, "AAPL", models.SideBuy, entryAt, "100", "110")

	t.Run("CreatePreloadsSymbol", func(t *testing.T) {
		assert.Equal(t, "AAPL", trade.Symbol.Ticker)
		assert.NotZero(t, trade.ID)
	})

	t.Run("InvalidTradeRejected", func(t *testing.T) {
		bad := &models.Trade{
			SymbolID:   trade.SymbolID,
			Side:       models.SideBuy,
			Quantity:   decimal.Zero,
			EntryPrice: dec("100"),
			EntryAt:    entryAt,
		}
		assert.ErrorContains(t, s.CreateTrade(ctx, alice.ID, bad), "quantity")
	})

	t.Run("OwnerScoping", func(t *testing.T) {
		got, err := s.GetTrade(ctx, alice.ID, trade.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.ID, got.ID)

		// Bob cannot see Alice's trade.
		_, err = s.GetTrade(ctx, bob.ID, trade.ID)
		assert.ErrorIs(t, err, models.ErrTradeNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		updated := *trade
		updated.Notes = "followed the plan"
		updated.Quantity = dec("20")
		require.NoError(t, s.UpdateTrade(ctx, alice.ID, &updated))

		got, err := s.GetTrade(ctx, alice.ID, trade.ID)
		require.NoError(t, err)
		assert.Equal(t, "followed the plan", got.Notes)
		assert.True(t, got.Quantity.Equal(dec("20")))
	})

	t.Run("UpdateForeignTradeFails", func(t *testing.T) {
		updated := *trade
		updated.Notes = "not yours"
		assert.ErrorIs(t, s.UpdateTrade(ctx, bob.ID, &updated), models.ErrTradeNotFound)
	})

	t.Run("TagMistakes", func(t *testing.T) {
		_, err := s.SeedMistakes(ctx)
		require.NoError(t, err)

		fomo, err := s.GetMistake(ctx, "FOMO trading")
		require.NoError(t, err)
		noStop, err := s.GetMistake(ctx, "No stop loss")
		require.NoError(t, err)

		tagged, err := s.SetTradeMistakes(ctx, alice.ID, trade.ID, []uint{fomo.ID, noStop.ID})
		require.NoError(t, err)
		assert.Len(t, tagged.Mistakes, 2)

		// Replace, not append.
		tagged, err = s.SetTradeMistakes(ctx, alice.ID, trade.ID, []uint{fomo.ID})
		require.NoError(t, err)
		require.Len(t, tagged.Mistakes, 1)
		assert.Equal(t, "FOMO trading", tagged.Mistakes[0].Name)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.DeleteTrade(ctx, alice.ID, trade.ID))
		_, err := s.GetTrade(ctx, alice.ID, trade.ID)
		assert.ErrorIs(t, err, models.ErrTradeNotFound)

		assert.ErrorIs(t, s.DeleteTrade(ctx, alice.ID, trade.ID), models.ErrTradeNotFound)
	})
}

func TestListTradesFiltering(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, "alice", "", "password1")
	require.NoError(t, err)
	bob, err := s.CreateUser(ctx, "bob", "", "password2")
	require.NoError(t, err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedTrade(t, s, alice.ID, "AAPL", models.SideBuy, base, "100", "110")              // closed win
	seedTrade(t, s, alice.ID, "AAPL", models.SideSell, base.AddDate(0, 0, 1), "50", "") // open
	seedTrade(t, s, alice.ID, "BTC-USD", models.SideBuy, base.AddDate(0, 0, 2), "30000", "29000")
	seedTrade(t, s, bob.ID, "AAPL", models.SideBuy, base, "100", "120")

	t.Run("AllForUser", func(t *testing.T) {
		trades, err := s.ListTrades(ctx, alice.ID, nil)
		require.NoError(t, err)
		require.Len(t, trades, 3)
		// Most recent entry first.
		assert.Equal(t, "BTC-USD", trades[0].Symbol.Ticker)
	})

	t.Run("ByTickerCaseInsensitive", func(t *testing.T) {
		trades, err := s.ListTrades(ctx, alice.ID, &TradeFilter{Ticker: "aapl"})
		require.NoError(t, err)
		assert.Len(t, trades, 2)
	})

	t.Run("BySide", func(t *testing.T) {
		trades, err := s.ListTrades(ctx, alice.ID, &TradeFilter{Side: models.SideSell})
		require.NoError(t, err)
		require.Len(t, trades, 1)
		assert.Equal(t, models.SideSell, trades[0].Side)
	})

	t.Run("ByStatus", func(t *testing.T) {
		open, err := s.ListTrades(ctx, alice.ID, &TradeFilter{Status: StatusOpen})
		require.NoError(t, err)
		assert.Len(t, open, 1)

		closed, err := s.ListTrades(ctx, alice.ID, &TradeFilter{Status: StatusClosed})
		require.NoError(t, err)
		assert.Len(t, closed, 2)
	})

	t.Run("ByDateRange", func(t *testing.T) {
		from := base.AddDate(0, 0, 1)
		to := base.AddDate(0, 0, 2)
		trades, err := s.ListTrades(ctx, alice.ID, &TradeFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Len(t, trades, 2)
	})

	t.Run("CombinedFilters", func(t *testing.T) {
		trades, err := s.ListTrades(ctx, alice.ID, &TradeFilter{
			Ticker: "AAPL",
			Status: StatusClosed,
		})
		require.NoError(t, err)
		require.Len(t, trades, 1)
		assert.Equal(t, models.SideBuy, trades[0].Side)
	})

	t.Run("InvalidFilterValues", func(t *testing.T) {
		_, err := s.ListTrades(ctx, alice.ID, &TradeFilter{Side: "hold"})
		assert.Error(t, err)

		_, err = s.ListTrades(ctx, alice.ID, &TradeFilter{Status: "pending"})
		assert.Error(t, err)
	})
}
