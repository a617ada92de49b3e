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

// userRepository implements domain.UserRepository
type userRepository struct {
	q queryer
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, usd_balance)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.USDBalance.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, usd_balance
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.q.QueryRowContext(ctx, query, id), id.String())
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, usd_balance
		FROM users
		WHERE username = $1
	`
	return r.scanUser(r.q.QueryRowContext(ctx, query, username), username)
}

func (r *userRepository) scanUser(row *sql.Row, identifier string) (*domain.User, error) {
	var user domain.User
	var balanceStr string

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "User", Identifier: identifier}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse usd_balance: %w", err)
	}
	user.USDBalance = balance

	return &user, nil
}

func (r *userRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE users SET usd_balance = $2 WHERE id = $1`

	res, err := r.q.ExecContext(ctx, query, id, balance.String())
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "User", Identifier: id.String()}
	}
	return nil
}

