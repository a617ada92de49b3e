package domain

import "github.com/google/uuid"

// WatchlistEntry marks an asset as a favorite of one user.
type WatchlistEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AssetID     uuid.UUID
	AssetSymbol string
	AssetName   string
}

// NewWatchlistEntry creates a watchlist entry linking a user to an asset.
func NewWatchlistEntry(userID uuid.UUID, asset *Asset) *WatchlistEntry {
	return &WatchlistEntry{
		ID:          uuid.New(),
		UserID:      userID,
		AssetID:     asset.ID,
		AssetSymbol: asset.Symbol,
		AssetName:   asset.Name,
	}
}
