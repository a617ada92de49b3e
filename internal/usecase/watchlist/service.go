package watchlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/investhub/backend/internal/domain"
)

// WatchlistService manages a user's set of favorite assets.
type WatchlistService struct {
	Store domain.Store
}

// NewWatchlistService creates a new WatchlistService instance
func NewWatchlistService(store domain.Store) *WatchlistService {
	return &WatchlistService{Store: store}
}

// Watchlist returns the user's watchlist entries.
func (s *WatchlistService) Watchlist(ctx context.Context, userID uuid.UUID) ([]*domain.WatchlistEntry, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.Store.Watchlist().ListByUser(ctx, userID)
}

// Add puts an asset on the user's watchlist. Adding the same asset twice is
// a conflict.
func (s *WatchlistService) Add(ctx context.Context, userID uuid.UUID, symbol string) (*domain.WatchlistEntry, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}

	symbol = domain.NormalizeSymbol(symbol)
	asset, err := s.Store.Assets().GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	entries, err := s.Store.Watchlist().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.AssetSymbol == asset.Symbol {
			return nil, &domain.AlreadyExistsError{Resource: "Watchlist entry", Identifier: asset.Symbol}
		}
	}

	entry := domain.NewWatchlistEntry(userID, asset)
	if err := s.Store.Watchlist().Add(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Remove takes an asset off the user's watchlist.
func (s *WatchlistService) Remove(ctx context.Context, userID uuid.UUID, symbol string) error {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return err
	}

	symbol = domain.NormalizeSymbol(symbol)
	entries, err := s.Store.Watchlist().ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.AssetSymbol == symbol {
			return s.Store.Watchlist().Remove(ctx, e.ID)
		}
	}
	return &domain.NotFoundError{Resource: "Watchlist entry", Identifier: symbol}
}

// Contains reports whether an asset is on the user's watchlist.
func (s *WatchlistService) Contains(ctx context.Context, userID uuid.UUID, symbol string) (bool, error) {
	entries, err := s.Watchlist(ctx, userID)
	if err != nil {
		return false, err
	}
	symbol = domain.NormalizeSymbol(symbol)
	for _, e := range entries {
		if e.AssetSymbol == symbol {
			return true, nil
		}
	}
	return false, nil
}
