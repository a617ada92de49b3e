package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/investhub/backend/internal/domain"
)

// watchlistRepository implements domain.WatchlistRepository
type watchlistRepository struct {
	q queryer
}

func (r *watchlistRepository) Add(ctx context.Context, entry *domain.WatchlistEntry) error {
	query := `
		INSERT INTO watchlist_entries (id, user_id, asset_id)
		VALUES ($1, $2, $3)
	`
	_, err := r.q.ExecContext(ctx, query, entry.ID, entry.UserID, entry.AssetID)
	if err != nil {
		return fmt.Errorf("failed to add watchlist entry: %w", err)
	}
	return nil
}

func (r *watchlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WatchlistEntry, error) {
	query := `
		SELECT w.id, w.user_id, w.asset_id, a.symbol, a.name
		FROM watchlist_entries w
		JOIN assets a ON a.id = w.asset_id
		WHERE w.user_id = $1
		ORDER BY a.symbol
	`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.WatchlistEntry, 0)
	for rows.Next() {
		var entry domain.WatchlistEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.AssetID, &entry.AssetSymbol, &entry.AssetName); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		out = append(out, &entry)
	}
	return out, rows.Err()
}

func (r *watchlistRepository) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM watchlist_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	return nil
}

func (r *watchlistRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM watchlist_entries WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete watchlist for user: %w", err)
	}
	return nil
}
