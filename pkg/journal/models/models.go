// Package models defines the trading-journal entities persisted by the store:
// users, symbols, trades, and the mistake catalog used for behavioral analysis.
package models

// AllModels returns all GORM models for auto-migration.
func AllModels() []any {
	return []any{
		&User{},
		&Symbol{},
		&Mistake{},
		&Trade{},
	}
}
