package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/quarzen/tradebook/internal/telemetry"
	"github.com/quarzen/tradebook/pkg/journal/models"
)

// TradeStatus filters trades by lifecycle state.
type TradeStatus string

const (
	// StatusAny matches open and closed trades alike.
	StatusAny TradeStatus = ""
	// StatusOpen matches trades with no recorded exit.
	StatusOpen TradeStatus = "open"
	// StatusClosed matches trades with both exit price and exit time.
	StatusClosed TradeStatus = "closed"
)

// TradeFilter narrows a trade listing. Zero values mean "no constraint".
type TradeFilter struct {
	// From/To bound the entry time (inclusive).
	From *time.Time
	To   *time.Time

	// Ticker filters by symbol, case-insensitively.
	Ticker string

	// Side filters by trade direction.
	Side models.Side

	// Status filters by open/closed state.
	Status TradeStatus
}

// apply adds the filter's constraints to a query on the trades table.
func (f *TradeFilter) apply(q *gorm.DB) (*gorm.DB, error) {
	if f == nil {
		return q, nil
	}

	if f.From != nil {
		q = q.Where("trades.entry_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("trades.entry_at <= ?", *f.To)
	}

	if f.Ticker != "" {
		normalized, err := models.NormalizeTicker(f.Ticker)
		if err != nil {
			return nil, err
		}
		q = q.Joins("JOIN symbols ON symbols.id = trades.symbol_id").
			Where("symbols.ticker = ?", normalized)
	}

	if f.Side != "" {
		if !f.Side.IsValid() {
			return nil, fmt.Errorf("invalid trade side %q", f.Side)
		}
		q = q.Where("trades.side = ?", f.Side)
	}

	switch f.Status {
	case StatusAny:
	case StatusOpen:
		q = q.Where("trades.exit_price IS NULL OR trades.exit_at IS NULL")
	case StatusClosed:
		q = q.Where("trades.exit_price IS NOT NULL AND trades.exit_at IS NOT NULL")
	default:
		return nil, fmt.Errorf("invalid trade status %q", f.Status)
	}

	return q, nil
}

// ============================================
// TRADE OPERATIONS
// ============================================

// CreateTrade validates and persists a trade for the given user.
func (s *GORMStore) CreateTrade(ctx context.Context, userID uint, trade *models.Trade) error {
	ctx, span := telemetry.StartStoreSpan(ctx, "trade.write",
		telemetry.DBTable("trades"), telemetry.UserID(userID))
	defer span.End()

	trade.UserID = userID
	if err := trade.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit("Mistakes", "Symbol").Create(trade).Error; err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}
	return s.reload(ctx, trade)
}

// GetTrade returns a user's trade by ID with symbol and mistakes preloaded.
// Trades belonging to other users are reported as not found.
func (s *GORMStore) GetTrade(ctx context.Context, userID, tradeID uint) (*models.Trade, error) {
	var trade models.Trade
	err := s.db.WithContext(ctx).
		Preload("Symbol").
		Preload("Mistakes").
		Where("id = ? AND user_id = ?", tradeID, userID).
		First(&trade).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrTradeNotFound)
	}
	return &trade, nil
}

// UpdateTrade validates and saves changes to an existing trade.
// Ownership is checked before anything is written.
func (s *GORMStore) UpdateTrade(ctx context.Context, userID uint, trade *models.Trade) error {
	existing, err := s.GetTrade(ctx, userID, trade.ID)
	if err != nil {
		return err
	}

	trade.UserID = existing.UserID
	if err := trade.Validate(); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Model(existing).
		Updates(map[string]any{
			"symbol_id":   trade.SymbolID,
			"side":        trade.Side,
			"quantity":    trade.Quantity,
			"entry_price": trade.EntryPrice,
			"entry_at":    trade.EntryAt,
			"exit_price":  trade.ExitPrice,
			"exit_at":     trade.ExitAt,
			"notes":       trade.Notes,
		}).Error
	if err != nil {
		return err
	}
	return s.reload(ctx, trade)
}

// DeleteTrade removes a user's trade and its mistake associations.
func (s *GORMStore) DeleteTrade(ctx context.Context, userID, tradeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trade models.Trade
		if err := tx.Where("id = ? AND user_id = ?", tradeID, userID).First(&trade).Error; err != nil {
			return convertNotFoundError(err, models.ErrTradeNotFound)
		}

		if err := tx.Model(&trade).Association("Mistakes").Clear(); err != nil {
			return err
		}

		return tx.Delete(&trade).Error
	})
}

// ListTrades returns a user's trades matching the filter, most recent entry
// first, with symbols and mistakes preloaded.
func (s *GORMStore) ListTrades(ctx context.Context, userID uint, filter *TradeFilter) ([]*models.Trade, error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "trade.list",
		telemetry.DBTable("trades"), telemetry.UserID(userID))
	defer span.End()

	q := s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Preload("Symbol").
		Preload("Mistakes").
		Where("trades.user_id = ?", userID)

	q, err := filter.apply(q)
	if err != nil {
		return nil, err
	}

	trades := []*models.Trade{}
	if err := q.Order("trades.entry_at DESC").Find(&trades).Error; err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(telemetry.TradeCount(len(trades)))
	return trades, nil
}

// SetTradeMistakes replaces the mistake tags on a user's trade.
func (s *GORMStore) SetTradeMistakes(ctx context.Context, userID, tradeID uint, mistakeIDs []uint) (*models.Trade, error) {
	trade, err := s.GetTrade(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	mistakes, err := s.GetMistakesByIDs(ctx, mistakeIDs)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(trade).Association("Mistakes").Replace(mistakes); err != nil {
		return nil, err
	}

	return s.GetTrade(ctx, userID, tradeID)
}

// reload refreshes a trade's associations after a write.
func (s *GORMStore) reload(ctx context.Context, trade *models.Trade) error {
	return s.db.WithContext(ctx).
		Preload("Symbol").
		Preload("Mistakes").
		First(trade, trade.ID).Error
}
