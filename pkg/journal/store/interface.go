// Package store provides the trading-journal persistence layer.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL
package store

import (
	"context"
	"time"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

// Store is the journal persistence interface.
//
// Thread safety: implementations must be safe for concurrent use from
// multiple goroutines.
type Store interface {
	// ============================================
	// USER OPERATIONS
	// ============================================

	// GetUser returns a user by username.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns a user by ID.
	GetUserByID(ctx context.Context, id uint) (*models.User, error)

	// ListUsers returns all users sorted by username.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateUser creates an account with a bcrypt-hashed password.
	// Returns models.ErrDuplicateUser if the username is taken.
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)

	// ValidateCredentials checks a username/password pair.
	// Returns models.ErrInvalidCredentials on failure.
	ValidateCredentials(ctx context.Context, username, password string) (*models.User, error)

	// UpdatePassword replaces a user's password hash.
	UpdatePassword(ctx context.Context, username, password string) error

	// UpdateLastLogin records a successful login.
	UpdateLastLogin(ctx context.Context, username string, timestamp time.Time) error

	// DeleteUser removes a user together with their trades and mistake tags.
	DeleteUser(ctx context.Context, username string) error

	// EnsureAdminUser creates the initial admin account if missing.
	// Returns the generated plaintext password when one was generated,
	// empty string otherwise.
	EnsureAdminUser(ctx context.Context, username, email, passwordHash string) (string, error)

	// ============================================
	// SYMBOL OPERATIONS
	// ============================================

	// GetSymbol returns a symbol by (normalized) ticker.
	GetSymbol(ctx context.Context, ticker string) (*models.Symbol, error)

	// GetOrCreateSymbol resolves a ticker, creating it on first use.
	GetOrCreateSymbol(ctx context.Context, ticker string, assetType models.AssetType) (*models.Symbol, error)

	// ListSymbols returns all symbols sorted by ticker.
	ListSymbols(ctx context.Context) ([]*models.Symbol, error)

	// ListUserTickers returns the distinct tickers a user has traded.
	ListUserTickers(ctx context.Context, userID uint) ([]string, error)

	// ============================================
	// MISTAKE OPERATIONS
	// ============================================

	// ListMistakes returns the mistake catalog ordered by category, name.
	ListMistakes(ctx context.Context) ([]*models.Mistake, error)

	// GetMistake returns a mistake by name.
	GetMistake(ctx context.Context, name string) (*models.Mistake, error)

	// GetMistakesByIDs returns mistakes by ID; all IDs must exist.
	GetMistakesByIDs(ctx context.Context, ids []uint) ([]models.Mistake, error)

	// GetMistakesByNames returns mistakes matching the given names.
	GetMistakesByNames(ctx context.Context, names []string) ([]models.Mistake, error)

	// SeedMistakes idempotently populates the predefined catalog.
	SeedMistakes(ctx context.Context) (int, error)

	// ============================================
	// TRADE OPERATIONS
	// ============================================

	// CreateTrade validates and persists a trade for the user.
	CreateTrade(ctx context.Context, userID uint, trade *models.Trade) error

	// GetTrade returns a user's trade by ID.
	// Returns models.ErrTradeNotFound for missing or foreign trades.
	GetTrade(ctx context.Context, userID, tradeID uint) (*models.Trade, error)

	// UpdateTrade validates and saves changes to a user's trade.
	UpdateTrade(ctx context.Context, userID uint, trade *models.Trade) error

	// DeleteTrade removes a user's trade and its mistake tags.
	DeleteTrade(ctx context.Context, userID, tradeID uint) error

	// ListTrades returns a user's trades matching the filter,
	// most recent entry first.
	ListTrades(ctx context.Context, userID uint, filter *TradeFilter) ([]*models.Trade, error)

	// SetTradeMistakes replaces the mistake tags on a trade.
	SetTradeMistakes(ctx context.Context, userID, tradeID uint, mistakeIDs []uint) (*models.Trade, error)

	// ============================================
	// HEALTH & LIFECYCLE
	// ============================================

	// Healthcheck pings the underlying database.
	Healthcheck(ctx context.Context) error

	// Close releases the database connection.
	Close() error
}
