package seeder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/investhub/backend/internal/adapter/repository/memory"
)

func TestSeed_CreatesAllDefaultAssets(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := NewAssetSeeder(store.Assets(), zap.NewNop())

	require.NoError(t, s.Seed(ctx))

	assets, err := store.Assets().List(ctx)
	require.NoError(t, err)
	assert.Len(t, assets, len(DefaultAssets))

	btc, err := store.Assets().GetBySymbol(ctx, "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin", btc.Name)
}

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := NewAssetSeeder(store.Assets(), zap.NewNop())

	require.NoError(t, s.Seed(ctx))
	first, err := store.Assets().GetBySymbol(ctx, "ETHUSDT")
	require.NoError(t, err)

	require.NoError(t, s.Seed(ctx))

	assets, err := store.Assets().List(ctx)
	require.NoError(t, err)
	assert.Len(t, assets, len(DefaultAssets))

	second, err := store.Assets().GetBySymbol(ctx, "ETHUSDT")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "existing assets keep their identity")
}
