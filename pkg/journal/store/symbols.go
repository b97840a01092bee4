package store

import (
	"context"
	"errors"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

// ============================================
// SYMBOL OPERATIONS
// ============================================

func (s *GORMStore) GetSymbol(ctx context.Context, ticker string) (*models.Symbol, error) {
	normalized, err := models.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	return getByField[models.Symbol](s.db, ctx, "ticker", normalized, models.ErrSymbolNotFound)
}

// GetOrCreateSymbol looks up a ticker and creates it on first use, so trades
// never duplicate raw ticker strings. The ticker is normalized before lookup.
func (s *GORMStore) GetOrCreateSymbol(ctx context.Context, ticker string, assetType models.AssetType) (*models.Symbol, error) {
	normalized, err := models.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	if assetType == "" {
		assetType = models.AssetStock
	}
	if !assetType.IsValid() {
		return nil, errors.New("invalid asset type: " + string(assetType))
	}

	symbol, err := getByField[models.Symbol](s.db, ctx, "ticker", normalized, models.ErrSymbolNotFound)
	if err == nil {
		return symbol, nil
	}
	if !errors.Is(err, models.ErrSymbolNotFound) {
		return nil, err
	}

	created := &models.Symbol{Ticker: normalized, AssetType: assetType}
	if err := s.db.WithContext(ctx).Create(created).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Lost a race with a concurrent insert; fetch the winner.
			return getByField[models.Symbol](s.db, ctx, "ticker", normalized, models.ErrSymbolNotFound)
		}
		return nil, err
	}

	return created, nil
}

func (s *GORMStore) ListSymbols(ctx context.Context) ([]*models.Symbol, error) {
	return listAll[models.Symbol](s.db, ctx, "ticker ASC")
}

// ListUserTickers returns the distinct tickers a user has traded, sorted.
// Used to populate the trade-list filter choices.
func (s *GORMStore) ListUserTickers(ctx context.Context, userID uint) ([]string, error) {
	tickers := []string{}
	err := s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Joins("JOIN symbols ON symbols.id = trades.symbol_id").
		Where("trades.user_id = ?", userID).
		Distinct("symbols.ticker").
		Order("symbols.ticker ASC").
		Pluck("symbols.ticker", &tickers).Error
	if err != nil {
		return nil, err
	}
	return tickers, nil
}
