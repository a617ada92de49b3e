package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports a caller error on a single input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports that a resource (user, asset, holding, ...) does not
// exist.
type NotFoundError struct {
	Resource   string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Identifier)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AlreadyExistsError reports a uniqueness conflict, e.g. a duplicate
// watchlist entry or username.
type AlreadyExistsError struct {
	Resource   string
	Identifier string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Identifier)
}

// InsufficientFundsError rejects a buy whose total exceeds the account
// balance.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// InsufficientHoldingsError rejects a sell that exceeds the owned quantity,
// reporting the exact quantity owned at rejection time (zero when no holding
// exists).
type InsufficientHoldingsError struct {
	Symbol    string
	Owned     decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient holdings of %s: owned %s, requested %s",
		e.Symbol, e.Owned.String(), e.Requested.String())
}

// PriceUnavailableError reports that no usable quote exists to price a
// trade.
type PriceUnavailableError struct {
	Symbol string
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("price not available for symbol: %s", e.Symbol)
}
