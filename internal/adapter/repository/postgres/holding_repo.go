package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investhub/backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	q queryer
}

func (r *holdingRepository) GetByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (*domain.Holding, error) {
	query := `
		SELECT id, user_id, asset_id, asset_symbol, quantity, avg_buy_price
		FROM holdings
		WHERE user_id = $1 AND asset_symbol = $2
	`
	row := r.q.QueryRowContext(ctx, query, userID, symbol)

	holding, err := scanHolding(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "Holding", Identifier: symbol}
		}
		return nil, err
	}
	return holding, nil
}

func (r *holdingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	query := `
		SELECT id, user_id, asset_id, asset_symbol, quantity, avg_buy_price
		FROM holdings
		WHERE user_id = $1
		ORDER BY asset_symbol
	`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Holding, 0)
	for rows.Next() {
		holding, err := scanHolding(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, holding)
	}
	return out, rows.Err()
}

func (r *holdingRepository) Upsert(ctx context.Context, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (id, user_id, asset_id, asset_symbol, quantity, avg_buy_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, asset_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, avg_buy_price = EXCLUDED.avg_buy_price
	`
	_, err := r.q.ExecContext(ctx, query,
		holding.ID,
		holding.UserID,
		holding.AssetID,
		holding.AssetSymbol,
		holding.Quantity.String(),
		holding.AvgBuyPrice.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding: %w", err)
	}
	return nil
}

func (r *holdingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}

func (r *holdingRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM holdings WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete holdings for user: %w", err)
	}
	return nil
}

func scanHolding(scan func(...any) error) (*domain.Holding, error) {
	var holding domain.Holding
	var quantityStr, avgPriceStr string

	if err := scan(
		&holding.ID,
		&holding.UserID,
		&holding.AssetID,
		&holding.AssetSymbol,
		&quantityStr,
		&avgPriceStr,
	); err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(quantityStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}
	avgPrice, err := decimal.NewFromString(avgPriceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse avg_buy_price: %w", err)
	}
	holding.Quantity = quantity
	holding.AvgBuyPrice = avgPrice

	return &holding, nil
}
