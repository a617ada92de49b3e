package trading

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/investhub/backend/internal/domain"
)

// TradingService executes buy/sell orders against the ledger and answers
// transaction queries.
type TradingService struct {
	Store  domain.Store
	Prices domain.PriceSource
	Logger *zap.Logger
}

// NewTradingService creates a new TradingService instance
func NewTradingService(store domain.Store, prices domain.PriceSource, logger *zap.Logger) *TradingService {
	return &TradingService{
		Store:  store,
		Prices: prices,
		Logger: logger,
	}
}

// Execute validates and executes a single immediate-fill market order.
// Logic:
//  1. Validate quantity and symbol (fail fast, nothing written)
//  2. Inside one per-user atomic unit: resolve user, asset, and quote;
//     check funds (buy) or owned quantity (sell); mutate balance and
//     holding; append the transaction record
//
// A failure at any point leaves the pre-trade state wholly intact.
func (s *TradingService) Execute(ctx context.Context, userID uuid.UUID, txType domain.TransactionType, symbol string, quantity decimal.Decimal) (*domain.Transaction, error) {
	if !quantity.IsPositive() {
		return nil, &domain.ValidationError{Field: "quantity", Message: "transaction quantity must be greater than 0"}
	}
	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, &domain.ValidationError{Field: "assetSymbol", Message: "asset symbol must be specified"}
	}
	if txType != domain.TransactionTypeBuy && txType != domain.TransactionTypeSell {
		return nil, &domain.ValidationError{Field: "type", Message: "transaction type must be BUY or SELL"}
	}

	var created *domain.Transaction
	err := s.Store.Atomically(ctx, userID, func(st domain.Store) error {
		user, err := st.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}

		asset, err := st.Assets().GetBySymbol(ctx, symbol)
		if err != nil {
			return err
		}

		price, ok := s.Prices.CurrentPrice(asset.Symbol)
		if !ok || !price.IsPositive() {
			return &domain.PriceUnavailableError{Symbol: asset.Symbol}
		}

		total := quantity.Mul(price)

		switch txType {
		case domain.TransactionTypeBuy:
			if err := s.applyBuy(ctx, st, user, asset, quantity, price, total); err != nil {
				return err
			}
		case domain.TransactionTypeSell:
			if err := s.applySell(ctx, st, user, asset, quantity, total); err != nil {
				return err
			}
		}

		if err := st.Users().UpdateBalance(ctx, userID, user.USDBalance); err != nil {
			return err
		}

		tx := domain.NewTransaction(userID, asset, txType, quantity, price)
		if err := st.Transactions().Create(ctx, tx); err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("trade executed",
		zap.String("transaction_id", created.ID),
		zap.String("user_id", userID.String()),
		zap.String("type", string(created.Type)),
		zap.String("symbol", created.AssetSymbol),
		zap.String("quantity", created.Quantity.String()),
		zap.String("price", created.PricePerUnit.String()),
	)
	return created, nil
}

func (s *TradingService) applyBuy(ctx context.Context, st domain.Store, user *domain.User, asset *domain.Asset, quantity, price, total decimal.Decimal) error {
	if user.USDBalance.LessThan(total) {
		return &domain.InsufficientFundsError{Required: total, Available: user.USDBalance}
	}
	user.USDBalance = user.USDBalance.Sub(total)

	holding, err := st.Holdings().GetByUserAndSymbol(ctx, user.ID, asset.Symbol)
	if err != nil {
		if !domain.IsNotFound(err) {
			return err
		}
		holding = domain.NewHolding(user.ID, asset)
	}
	holding.ApplyBuy(quantity, price)
	return st.Holdings().Upsert(ctx, holding)
}

func (s *TradingService) applySell(ctx context.Context, st domain.Store, user *domain.User, asset *domain.Asset, quantity, total decimal.Decimal) error {
	holding, err := st.Holdings().GetByUserAndSymbol(ctx, user.ID, asset.Symbol)
	if err != nil {
		if domain.IsNotFound(err) {
			return &domain.InsufficientHoldingsError{Symbol: asset.Symbol, Owned: decimal.Zero, Requested: quantity}
		}
		return err
	}
	if holding.Quantity.LessThan(quantity) {
		return &domain.InsufficientHoldingsError{Symbol: asset.Symbol, Owned: holding.Quantity, Requested: quantity}
	}

	user.USDBalance = user.USDBalance.Add(total)
	holding.ApplySell(quantity)

	if holding.Quantity.IsZero() {
		return st.Holdings().Delete(ctx, holding.ID)
	}
	return st.Holdings().Upsert(ctx, holding)
}

// Transactions returns all transactions of a user, newest first.
func (s *TradingService) Transactions(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.Store.Transactions().ListByUser(ctx, userID)
}

// TransactionsByType returns a user's transactions of one type.
func (s *TradingService) TransactionsByType(ctx context.Context, userID uuid.UUID, txType domain.TransactionType) ([]*domain.Transaction, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.Store.Transactions().ListByUserAndType(ctx, userID, txType)
}

// TotalAmountByType sums quantity*pricePerUnit over a user's transactions of
// one type.
func (s *TradingService) TotalAmountByType(ctx context.Context, userID uuid.UUID, txType domain.TransactionType) (decimal.Decimal, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return decimal.Zero, err
	}
	return s.Store.Transactions().TotalAmountByUserAndType(ctx, userID, txType)
}

// TransactionCountByAsset counts a user's transactions for one asset.
func (s *TradingService) TransactionCountByAsset(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return 0, err
	}
	return s.Store.Transactions().CountByUserAndSymbol(ctx, userID, domain.NormalizeSymbol(symbol))
}

// TransactionByID returns one transaction, refusing cross-user access.
func (s *TradingService) TransactionByID(ctx context.Context, userID uuid.UUID, id string) (*domain.Transaction, error) {
	tx, err := s.Store.Transactions().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		// Another user's record looks exactly like a missing one.
		return nil, &domain.NotFoundError{Resource: "Transaction", Identifier: id}
	}
	return tx, nil
}

// TransactionsByAsset returns a user's transactions for one asset, newest
// first.
func (s *TradingService) TransactionsByAsset(ctx context.Context, userID uuid.UUID, symbol string) ([]*domain.Transaction, error) {
	all, err := s.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	symbol = domain.NormalizeSymbol(symbol)
	out := make([]*domain.Transaction, 0)
	for _, tx := range all {
		if tx.AssetSymbol == symbol {
			out = append(out, tx)
		}
	}
	return out, nil
}
