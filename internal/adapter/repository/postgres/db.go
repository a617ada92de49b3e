package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=investhub sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// EnsureSchema creates the tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			usd_balance DECIMAL(19,8) NOT NULL CHECK (usd_balance >= 0)
		);

		CREATE TABLE IF NOT EXISTS assets (
			id UUID PRIMARY KEY,
			symbol TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS holdings (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			asset_id UUID NOT NULL REFERENCES assets(id),
			asset_symbol TEXT NOT NULL,
			quantity DECIMAL(28,8) NOT NULL CHECK (quantity >= 0),
			avg_buy_price DECIMAL(28,8) NOT NULL CHECK (avg_buy_price >= 0),
			UNIQUE (user_id, asset_id)
		);

		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			asset_id UUID NOT NULL REFERENCES assets(id),
			asset_symbol TEXT NOT NULL,
			type TEXT NOT NULL,
			quantity DECIMAL(28,8) NOT NULL CHECK (quantity > 0),
			price_per_unit DECIMAL(28,8) NOT NULL CHECK (price_per_unit > 0),
			ts TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS watchlist_entries (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			asset_id UUID NOT NULL REFERENCES assets(id),
			UNIQUE (user_id, asset_id)
		);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
