package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investhub/backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Stats is the aggregate valuation of one user's portfolio.
type Stats struct {
	USDBalance          decimal.Decimal          `json:"usdBalance"`
	TotalInvested       decimal.Decimal          `json:"totalInvested"`
	CurrentValue        decimal.Decimal          `json:"currentValue"`
	NetGain             decimal.Decimal          `json:"netGain"`
	ReturnPercentage    decimal.Decimal          `json:"returnPercentage"`
	PerformanceStatus   domain.PerformanceStatus `json:"performanceStatus"`
	HoldingsCount       int                      `json:"holdingsCount"`
	TotalPortfolioValue decimal.Decimal          `json:"totalPortfolioValue"`
}

// Overview is the composite portfolio read model.
type Overview struct {
	Balance    decimal.Decimal   `json:"balance"`
	Holdings   []*domain.Holding `json:"holdings"`
	TotalValue decimal.Decimal   `json:"totalValue"`
}

// PortfolioService answers read-only questions about a user's ledger. It
// never mutates state; calling any operation twice without an intervening
// trade or reset yields identical results.
type PortfolioService struct {
	Store  domain.Store
	Prices domain.PriceSource
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(store domain.Store, prices domain.PriceSource) *PortfolioService {
	return &PortfolioService{
		Store:  store,
		Prices: prices,
	}
}

// Balance returns the user's current USD balance.
func (s *PortfolioService) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.USDBalance, nil
}

// Holdings returns all live holdings of the user. Only positive-quantity
// rows are returned.
func (s *PortfolioService) Holdings(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}
	all, err := s.Store.Holdings().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Holding, 0, len(all))
	for _, h := range all {
		if h.Quantity.IsPositive() {
			out = append(out, h)
		}
	}
	return out, nil
}

// HoldingBySymbol returns the user's holding for one asset, matching the
// symbol case-insensitively.
func (s *PortfolioService) HoldingBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (*domain.Holding, error) {
	holdings, err := s.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}
	symbol = domain.NormalizeSymbol(symbol)
	for _, h := range holdings {
		if h.AssetSymbol == symbol {
			return h, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "Holding", Identifier: symbol}
}

// Statistics computes the aggregate valuation of the user's portfolio
// against current prices. A holding whose quote is missing contributes 0 to
// the current value while its cost basis still counts as invested; the gap
// shows up as a loss until the quote returns.
func (s *PortfolioService) Statistics(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalInvested := decimal.Zero
	currentValue := decimal.Zero
	for _, h := range holdings {
		totalInvested = totalInvested.Add(h.InvestedValue())
		if price, ok := s.Prices.CurrentPrice(h.AssetSymbol); ok {
			currentValue = currentValue.Add(h.Quantity.Mul(price))
		}
	}

	netGain := currentValue.Sub(totalInvested)
	returnPercentage := decimal.Zero
	if totalInvested.IsPositive() {
		returnPercentage = netGain.Div(totalInvested).Mul(hundred)
	}

	return &Stats{
		USDBalance:          user.USDBalance,
		TotalInvested:       totalInvested,
		CurrentValue:        currentValue,
		NetGain:             netGain,
		ReturnPercentage:    returnPercentage,
		PerformanceStatus:   domain.ClassifyPerformance(netGain),
		HoldingsCount:       len(holdings),
		TotalPortfolioValue: currentValue.Add(user.USDBalance),
	}, nil
}

// Portfolio returns the composite balance + holdings + total value view.
func (s *PortfolioService) Portfolio(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdingsValue := decimal.Zero
	for _, h := range holdings {
		if price, ok := s.Prices.CurrentPrice(h.AssetSymbol); ok {
			holdingsValue = holdingsValue.Add(h.Quantity.Mul(price))
		}
	}

	return &Overview{
		Balance:    user.USDBalance,
		Holdings:   holdings,
		TotalValue: user.USDBalance.Add(holdingsValue),
	}, nil
}
