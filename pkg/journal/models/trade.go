package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade.
type Side string

const (
	// SideBuy is a long position.
	SideBuy Side = "buy"
	// SideSell is a short position.
	SideSell Side = "sell"
)

// IsValid checks if the side is buy or sell.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// futureGrace allows clock skew between client and server when rejecting
// future-dated entries and exits.
const futureGrace = time.Minute

// Trade is a single journal entry tracking the full lifecycle of a position.
// Quantities and prices use arbitrary-precision decimals; exit fields are nil
// while the position is open.
type Trade struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;index:idx_trades_user_entry,priority:1" json:"-"`
	SymbolID uint `gorm:"not null;index" json:"-"`

	Symbol Symbol `json:"symbol"`
	Side   Side   `gorm:"not null;size:4" json:"side"`

	Quantity   decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"quantity"`
	EntryPrice decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"entry_price"`
	EntryAt    time.Time       `gorm:"not null;index:idx_trades_user_entry,priority:2,sort:desc" json:"entry_at"`

	ExitPrice *decimal.Decimal `gorm:"type:numeric(20,8)" json:"exit_price,omitempty"`
	ExitAt    *time.Time       `json:"exit_at,omitempty"`

	Notes string `json:"notes,omitempty"`

	Mistakes []Mistake `gorm:"many2many:trade_mistakes;" json:"mistakes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Trade.
func (Trade) TableName() string {
	return "trades"
}

// IsClosed reports whether the position has been exited.
func (t *Trade) IsClosed() bool {
	return t.ExitPrice != nil && t.ExitAt != nil
}

// PnL returns the realized profit/loss for closed trades, nil for open ones.
// Long: (exit - entry) * quantity. Short: (entry - exit) * quantity.
func (t *Trade) PnL() *decimal.Decimal {
	if t.ExitPrice == nil {
		return nil
	}

	var pnl decimal.Decimal
	if t.Side == SideBuy {
		pnl = t.ExitPrice.Sub(t.EntryPrice).Mul(t.Quantity)
	} else {
		pnl = t.EntryPrice.Sub(*t.ExitPrice).Mul(t.Quantity)
	}
	return &pnl
}

// Validate checks the trade's internal consistency. It mirrors the rules the
// journal has always enforced: no future-dated events (with a one-minute
// grace for clock skew), exits after entries, positive quantities and prices,
// and exit price/time provided together or not at all.
func (t *Trade) Validate() error {
	now := time.Now()

	if !t.Side.IsValid() {
		return fmt.Errorf("invalid trade side %q", t.Side)
	}

	if t.EntryAt.IsZero() {
		return errors.New("entry time is required")
	}
	if t.EntryAt.After(now.Add(futureGrace)) {
		return errors.New("entry time cannot be in the future")
	}

	if t.ExitAt != nil && t.ExitAt.After(now.Add(futureGrace)) {
		return errors.New("exit time cannot be in the future")
	}
	if t.ExitAt != nil && t.ExitAt.Before(t.EntryAt) {
		return errors.New("exit time cannot be before entry time")
	}

	if !t.Quantity.IsPositive() {
		return errors.New("quantity must be greater than zero")
	}
	if !t.EntryPrice.IsPositive() {
		return errors.New("entry price must be greater than zero")
	}
	if t.ExitPrice != nil && !t.ExitPrice.IsPositive() {
		return errors.New("exit price must be greater than zero")
	}

	if (t.ExitPrice != nil) != (t.ExitAt != nil) {
		return errors.New("exit price and exit time must be provided together, or both left empty")
	}

	return nil
}

// IsWin reports whether a closed trade exited at a favorable price for its
// side. Open trades and break-even exits are not wins.
func (t *Trade) IsWin() bool {
	if !t.IsClosed() {
		return false
	}
	if t.Side == SideBuy {
		return t.ExitPrice.GreaterThan(t.EntryPrice)
	}
	return t.ExitPrice.LessThan(t.EntryPrice)
}
