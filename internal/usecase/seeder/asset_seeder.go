package seeder

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investhub/backend/internal/domain"
)

// SeedAsset defines the structure for an asset to be seeded
type SeedAsset struct {
	Symbol string
	Name   string
}

// DefaultAssets are the tradable pairs seeded on startup. They match the
// ticker streams the market data feed subscribes to.
var DefaultAssets = []SeedAsset{
	{Symbol: "BTCUSDT", Name: "Bitcoin"},
	{Symbol: "ETHUSDT", Name: "Ethereum"},
	{Symbol: "BNBUSDT", Name: "Binance Coin"},
	{Symbol: "ADAUSDT", Name: "Cardano"},
	{Symbol: "DOGEUSDT", Name: "Dogecoin"},
	{Symbol: "XRPUSDT", Name: "Ripple"},
	{Symbol: "SOLUSDT", Name: "Solana"},
}

// AssetSeeder handles seeding of the asset reference data
type AssetSeeder struct {
	Repo   domain.AssetRepository
	Logger *zap.Logger
}

// NewAssetSeeder creates a new AssetSeeder instance
func NewAssetSeeder(repo domain.AssetRepository, logger *zap.Logger) *AssetSeeder {
	return &AssetSeeder{
		Repo:   repo,
		Logger: logger,
	}
}

// Seed ensures all default assets exist. Assets already present are left
// untouched, so the seeder is safe to run on every startup.
func (s *AssetSeeder) Seed(ctx context.Context) error {
	for _, seed := range DefaultAssets {
		_, err := s.Repo.GetBySymbol(ctx, seed.Symbol)
		if err == nil {
			continue
		}
		if !domain.IsNotFound(err) {
			return err
		}

		asset := &domain.Asset{
			ID:     uuid.New(),
			Symbol: seed.Symbol,
			Name:   seed.Name,
		}
		if err := s.Repo.Create(ctx, asset); err != nil {
			return err
		}
		s.Logger.Info("asset seeded",
			zap.String("symbol", seed.Symbol),
			zap.String("name", seed.Name),
		)
	}
	return nil
}
