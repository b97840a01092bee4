package models

import (
	"fmt"
	"strings"
)

// AssetType classifies the financial instrument behind a symbol.
type AssetType string

const (
	AssetStock     AssetType = "stock"
	AssetCrypto    AssetType = "crypto"
	AssetForex     AssetType = "forex"
	AssetCommodity AssetType = "commodity"
	AssetOption    AssetType = "option"
	AssetFuture    AssetType = "future"
	AssetOther     AssetType = "other"
)

// IsValid checks if the asset type is one of the known values.
func (a AssetType) IsValid() bool {
	switch a {
	case AssetStock, AssetCrypto, AssetForex, AssetCommodity, AssetOption, AssetFuture, AssetOther:
		return true
	}
	return false
}

// Symbol represents a trading symbol/ticker (e.g. AAPL, BTC-USD, EUR/USD).
// Symbols are shared across users so ticker names are not duplicated per trade.
type Symbol struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Ticker    string    `gorm:"uniqueIndex;not null;size:20" json:"ticker"`
	Name      string    `gorm:"size:100" json:"name,omitempty"`
	AssetType AssetType `gorm:"size:20;default:stock" json:"asset_type"`
}

// TableName returns the table name for Symbol.
func (Symbol) TableName() string {
	return "symbols"
}

// NormalizeTicker upper-cases and trims a ticker and checks its shape.
// Tickers allow letters, digits, hyphens, underscores, and dots.
func NormalizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return "", fmt.Errorf("symbol cannot be empty")
	}
	if len(t) > 20 {
		return "", fmt.Errorf("symbol name is too long (max 20 characters)")
	}
	for _, r := range t {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return "", fmt.Errorf("symbol contains invalid character %q", r)
		}
	}
	return t, nil
}
