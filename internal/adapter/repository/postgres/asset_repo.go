package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/investhub/backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	q queryer
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `INSERT INTO assets (id, symbol, name) VALUES ($1, $2, $3)`

	_, err := r.q.ExecContext(ctx, query, asset.ID, asset.Symbol, asset.Name)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

func (r *assetRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	query := `SELECT id, symbol, name FROM assets WHERE symbol = $1`

	var asset domain.Asset
	err := r.q.QueryRowContext(ctx, query, symbol).Scan(&asset.ID, &asset.Symbol, &asset.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "Asset", Identifier: symbol}
		}
		return nil, fmt.Errorf("failed to get asset by symbol: %w", err)
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	query := `SELECT id, symbol, name FROM assets ORDER BY symbol`

	return r.queryAssets(ctx, query)
}

func (r *assetRepository) Search(ctx context.Context, q string) ([]*domain.Asset, error) {
	query := `
		SELECT id, symbol, name
		FROM assets
		WHERE symbol ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY symbol
	`
	return r.queryAssets(ctx, query, q)
}

func (r *assetRepository) queryAssets(ctx context.Context, query string, args ...any) ([]*domain.Asset, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Asset, 0)
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(&asset.ID, &asset.Symbol, &asset.Name); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		out = append(out, &asset)
	}
	return out, rows.Err()
}
