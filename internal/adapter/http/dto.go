package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/investhub/backend/internal/domain"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	Username  string `json:"username"`
}

type createTransactionRequest struct {
	Type        string          `json:"type" binding:"required"`
	AssetSymbol string          `json:"assetSymbol" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

type transactionResponse struct {
	ID           string          `json:"id"`
	AssetSymbol  string          `json:"assetSymbol"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Timestamp    time.Time       `json:"timestamp"`
}

func toTransactionResponse(tx *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		AssetSymbol:  tx.AssetSymbol,
		Type:         string(tx.Type),
		Quantity:     tx.Quantity,
		PricePerUnit: tx.PricePerUnit,
		TotalPrice:   tx.TotalPrice(),
		Timestamp:    tx.Timestamp,
	}
}

func toTransactionResponses(txs []*domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

type holdingResponse struct {
	AssetSymbol string          `json:"assetSymbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	AvgBuyPrice decimal.Decimal `json:"avgBuyPrice"`
}

func toHoldingResponse(h *domain.Holding) holdingResponse {
	return holdingResponse{
		AssetSymbol: h.AssetSymbol,
		Quantity:    h.Quantity,
		AvgBuyPrice: h.AvgBuyPrice,
	}
}

func toHoldingResponses(holdings []*domain.Holding) []holdingResponse {
	out := make([]holdingResponse, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, toHoldingResponse(h))
	}
	return out
}

type assetResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

func toAssetResponses(assets []*domain.Asset) []assetResponse {
	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, assetResponse{Symbol: a.Symbol, Name: a.Name})
	}
	return out
}

type watchlistEntryResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

func toWatchlistResponses(entries []*domain.WatchlistEntry) []watchlistEntryResponse {
	out := make([]watchlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, watchlistEntryResponse{Symbol: e.AssetSymbol, Name: e.AssetName})
	}
	return out
}
