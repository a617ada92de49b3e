package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/investhub/backend/internal/domain"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements domain.Store on PostgreSQL.
type Store struct {
	db *DB
	q  queryer
}

var _ domain.Store = (*Store)(nil)

// NewStore creates a new PostgreSQL-backed store
func NewStore(db *DB) *Store {
	return &Store{db: db, q: db.DB}
}

func (s *Store) Users() domain.UserRepository               { return &userRepository{q: s.q} }
func (s *Store) Assets() domain.AssetRepository             { return &assetRepository{q: s.q} }
func (s *Store) Holdings() domain.HoldingRepository         { return &holdingRepository{q: s.q} }
func (s *Store) Transactions() domain.TransactionRepository { return &transactionRepository{q: s.q} }
func (s *Store) Watchlist() domain.WatchlistRepository      { return &watchlistRepository{q: s.q} }

// Atomically runs fn inside one database transaction. The user's row is
// locked with SELECT ... FOR UPDATE first, so writes by the same user are
// serialized while different users never contend.
func (s *Store) Atomically(ctx context.Context, userID uuid.UUID, fn func(domain.Store) error) error {
	if _, alreadyInTx := s.q.(*sql.Tx); alreadyInTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Row-level lock. A missing row is fine: fn will report NotFound.
	if _, err := tx.ExecContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
		return fmt.Errorf("failed to lock user row: %w", err)
	}

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
