package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// TransactionType is a closed two-variant enum: a trade is either a buy or
// a sell.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// ParseTransactionType maps a raw string onto the enum, case-insensitively.
func ParseTransactionType(raw string) (TransactionType, bool) {
	switch TransactionType(NormalizeSymbol(raw)) {
	case TransactionTypeBuy:
		return TransactionTypeBuy, true
	case TransactionTypeSell:
		return TransactionTypeSell, true
	}
	return "", false
}

// Transaction is an immutable record of one executed trade. IDs are ULIDs,
// so they sort roughly by creation time for display without requiring a
// strict global order.
type Transaction struct {
	ID           string
	UserID       uuid.UUID
	AssetID      uuid.UUID
	AssetSymbol  string
	Type         TransactionType
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	Timestamp    time.Time
}

// NewTransaction captures an executed trade at the current time.
func NewTransaction(userID uuid.UUID, asset *Asset, txType TransactionType, quantity, price decimal.Decimal) *Transaction {
	return &Transaction{
		ID:           ulid.Make().String(),
		UserID:       userID,
		AssetID:      asset.ID,
		AssetSymbol:  asset.Symbol,
		Type:         txType,
		Quantity:     quantity,
		PricePerUnit: price,
		Timestamp:    time.Now().UTC(),
	}
}

// TotalPrice is quantity times price per unit.
func (t *Transaction) TotalPrice() decimal.Decimal {
	return t.Quantity.Mul(t.PricePerUnit)
}
