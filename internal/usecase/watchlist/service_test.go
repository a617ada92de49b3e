package watchlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investhub/backend/internal/adapter/repository/memory"
	"github.com/investhub/backend/internal/domain"
)

func setup(t *testing.T) (*WatchlistService, *domain.User) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	user := domain.NewUser("alice", "hash")
	require.NoError(t, store.Users().Create(ctx, user))
	require.NoError(t, store.Assets().Create(ctx, &domain.Asset{ID: uuid.New(), Symbol: "BTCUSDT", Name: "Bitcoin"}))
	require.NoError(t, store.Assets().Create(ctx, &domain.Asset{ID: uuid.New(), Symbol: "ETHUSDT", Name: "Ethereum"}))
	return NewWatchlistService(store), user
}

func TestAdd_And_Watchlist(t *testing.T) {
	ctx := context.Background()
	svc, user := setup(t)

	entry, err := svc.Add(ctx, user.ID, "btcusdt")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", entry.AssetSymbol)
	assert.Equal(t, "Bitcoin", entry.AssetName)

	entries, err := svc.Watchlist(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestAdd_DuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	svc, user := setup(t)

	_, err := svc.Add(ctx, user.ID, "BTCUSDT")
	require.NoError(t, err)

	_, err = svc.Add(ctx, user.ID, "BTCUSDT")
	var exists *domain.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "Watchlist entry", exists.Resource)
}

func TestAdd_UnknownAsset(t *testing.T) {
	ctx := context.Background()
	svc, user := setup(t)

	_, err := svc.Add(ctx, user.ID, "DOGEUSDT")
	assert.True(t, domain.IsNotFound(err))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc, user := setup(t)

	_, err := svc.Add(ctx, user.ID, "BTCUSDT")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, user.ID, "BTCUSDT"))

	entries, err := svc.Watchlist(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = svc.Remove(ctx, user.ID, "BTCUSDT")
	assert.True(t, domain.IsNotFound(err))
}

func TestContains(t *testing.T) {
	ctx := context.Background()
	svc, user := setup(t)

	_, err := svc.Add(ctx, user.ID, "ETHUSDT")
	require.NoError(t, err)

	ok, err := svc.Contains(ctx, user.ID, "ethusdt")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Contains(ctx, user.ID, "BTCUSDT")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWatchlist_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.Watchlist(ctx, uuid.New())
	assert.True(t, domain.IsNotFound(err))
}
