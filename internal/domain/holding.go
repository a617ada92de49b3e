package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is a user's live position in one asset. At most one holding exists
// per (user, asset) pair. Quantity is never negative; AvgBuyPrice is the
// weighted-average price paid per unit of the currently-held quantity and is
// only meaningful while Quantity > 0.
type Holding struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AssetID     uuid.UUID
	AssetSymbol string
	Quantity    decimal.Decimal
	AvgBuyPrice decimal.Decimal
}

// NewHolding creates an empty holding for a (user, asset) pair. The first
// ApplyBuy initializes the average price.
func NewHolding(userID uuid.UUID, asset *Asset) *Holding {
	return &Holding{
		ID:          uuid.New(),
		UserID:      userID,
		AssetID:     asset.ID,
		AssetSymbol: asset.Symbol,
		Quantity:    decimal.Zero,
		AvgBuyPrice: decimal.Zero,
	}
}

// ApplyBuy adds quantity bought at price and recomputes the weighted-average
// cost: (oldQty*oldAvg + qty*price) / (oldQty+qty). On an empty holding this
// reduces to the buy price.
func (h *Holding) ApplyBuy(quantity, price decimal.Decimal) {
	newQuantity := h.Quantity.Add(quantity)
	totalCost := h.Quantity.Mul(h.AvgBuyPrice).Add(quantity.Mul(price))
	h.Quantity = newQuantity
	h.AvgBuyPrice = totalCost.Div(newQuantity)
}

// ApplySell reduces the quantity. A sell never re-prices the remaining lot:
// average cost only changes on buys.
func (h *Holding) ApplySell(quantity decimal.Decimal) {
	h.Quantity = h.Quantity.Sub(quantity)
}

// InvestedValue is quantity times average buy price, the cost basis of the
// position.
func (h *Holding) InvestedValue() decimal.Decimal {
	return h.Quantity.Mul(h.AvgBuyPrice)
}
