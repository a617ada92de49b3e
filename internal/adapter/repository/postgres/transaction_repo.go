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

// transactionRepository implements domain.TransactionRepository. Rows are
// append-only: there is no update path.
type transactionRepository struct {
	q queryer
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, asset_id, asset_symbol, type, quantity, price_per_unit, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.AssetID,
		tx.AssetSymbol,
		string(tx.Type),
		tx.Quantity.String(),
		tx.PricePerUnit.String(),
		tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT id, user_id, asset_id, asset_symbol, type, quantity, price_per_unit, ts
		FROM transactions
		WHERE id = $1
	`
	row := r.q.QueryRowContext(ctx, query, id)

	tx, err := scanTransaction(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "Transaction", Identifier: id}
		}
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, asset_id, asset_symbol, type, quantity, price_per_unit, ts
		FROM transactions
		WHERE user_id = $1
		ORDER BY ts DESC
	`
	return r.queryTransactions(ctx, query, userID)
}

func (r *transactionRepository) ListByUserAndType(ctx context.Context, userID uuid.UUID, txType domain.TransactionType) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, asset_id, asset_symbol, type, quantity, price_per_unit, ts
		FROM transactions
		WHERE user_id = $1 AND type = $2
		ORDER BY ts DESC
	`
	return r.queryTransactions(ctx, query, userID, string(txType))
}

func (r *transactionRepository) TotalAmountByUserAndType(ctx context.Context, userID uuid.UUID, txType domain.TransactionType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity * price_per_unit), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2
	`
	var totalStr string
	if err := r.q.QueryRowContext(ctx, query, userID, string(txType)).Scan(&totalStr); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse total: %w", err)
	}
	return total, nil
}

func (r *transactionRepository) CountByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND asset_symbol = $2`

	var count int64
	if err := r.q.QueryRowContext(ctx, query, userID, symbol).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete transactions for user: %w", err)
	}
	return nil
}

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func scanTransaction(scan func(...any) error) (*domain.Transaction, error) {
	var tx domain.Transaction
	var txType string
	var quantityStr, priceStr string

	if err := scan(
		&tx.ID,
		&tx.UserID,
		&tx.AssetID,
		&tx.AssetSymbol,
		&txType,
		&quantityStr,
		&priceStr,
		&tx.Timestamp,
	); err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(quantityStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price_per_unit: %w", err)
	}
	tx.Type = domain.TransactionType(txType)
	tx.Quantity = quantity
	tx.PricePerUnit = price

	return &tx, nil
}
