package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StartingBalance is the simulated USD balance every account begins with
// and is restored to on account reset.
var StartingBalance = decimal.RequireFromString("30000.00")

// User represents a registered account holder. USDBalance is the simulated
// cash balance and must never go negative; only the trading service and the
// account reset mutate it.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	USDBalance   decimal.Decimal
}

// Validate ensures the user adheres to domain rules
func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username cannot be empty")
	}
	if u.USDBalance.IsNegative() {
		return errors.New("usd balance cannot be negative")
	}
	return nil
}

// NewUser creates a user with the fixed starting balance.
func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		USDBalance:   StartingBalance,
	}
}
