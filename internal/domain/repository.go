package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by its unique username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdateBalance persists a new USD balance for the user
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

}

// AssetRepository defines the interface for asset reference data
type AssetRepository interface {
	// Create creates a new asset
	Create(ctx context.Context, asset *Asset) error

	// GetBySymbol retrieves an asset by its upper-case symbol
	GetBySymbol(ctx context.Context, symbol string) (*Asset, error)

	// List retrieves all assets ordered by symbol
	List(ctx context.Context) ([]*Asset, error)

	// Search retrieves assets whose symbol or name contains the query,
	// case-insensitively
	Search(ctx context.Context, query string) ([]*Asset, error)
}

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// GetByUserAndSymbol retrieves the unique holding for a (user, asset)
	// pair
	GetByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (*Holding, error)

	// ListByUser retrieves all holdings of a user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Holding, error)

	// Upsert creates or replaces a holding
	Upsert(ctx context.Context, holding *Holding) error

	// Delete removes a holding by its ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAllForUser removes every holding of a user
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// TransactionRepository defines the interface for the append-only trade log
type TransactionRepository interface {
	// Create appends a transaction record
	Create(ctx context.Context, tx *Transaction) error

	// GetByID retrieves a transaction by its ID
	GetByID(ctx context.Context, id string) (*Transaction, error)

	// ListByUser retrieves all transactions of a user, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)

	// ListByUserAndType retrieves a user's transactions of one type,
	// newest first
	ListByUserAndType(ctx context.Context, userID uuid.UUID, txType TransactionType) ([]*Transaction, error)

	// TotalAmountByUserAndType sums quantity*pricePerUnit over a user's
	// transactions of one type
	TotalAmountByUserAndType(ctx context.Context, userID uuid.UUID, txType TransactionType) (decimal.Decimal, error)

	// CountByUserAndSymbol counts a user's transactions for one asset
	CountByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (int64, error)

	// DeleteAllForUser removes every transaction of a user
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// WatchlistRepository defines the interface for watchlist persistence
type WatchlistRepository interface {
	// Add creates a watchlist entry
	Add(ctx context.Context, entry *WatchlistEntry) error

	// ListByUser retrieves all watchlist entries of a user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*WatchlistEntry, error)

	// Remove deletes a watchlist entry by its ID
	Remove(ctx context.Context, id uuid.UUID) error

	// DeleteAllForUser removes every watchlist entry of a user
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// Store aggregates the repositories and provides the atomic write boundary.
type Store interface {
	Users() UserRepository
	Assets() AssetRepository
	Holdings() HoldingRepository
	Transactions() TransactionRepository
	Watchlist() WatchlistRepository

	// Atomically runs fn inside a single transaction scoped to one user's
	// rows. Writes by the same user are serialized: two concurrent trades
	// cannot both read the pre-trade balance and both commit. If fn
	// returns an error, no mutation it performed is applied.
	Atomically(ctx context.Context, userID uuid.UUID, fn func(Store) error) error
}

// PriceSource exposes the latest known market price per symbol. It is an
// external, eventually-consistent cache of quotes: reads are non-blocking
// and best-effort fresh, and a missing quote simply reports ok=false.
type PriceSource interface {
	// CurrentPrice returns the latest quote for an upper-case symbol.
	CurrentPrice(symbol string) (decimal.Decimal, bool)

	// Snapshot returns a copy of all known quotes.
	Snapshot() map[string]decimal.Decimal
}
