package marketdata

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/investhub/backend/internal/cache"
	"github.com/investhub/backend/internal/domain"
)

const assetsCacheKey = "assets:all"

// MarketDataService exposes asset reference data and live quotes. Asset
// list/search reads are cached; quotes always come straight from the price
// source.
type MarketDataService struct {
	Assets domain.AssetRepository
	Prices domain.PriceSource
	Cache  *cache.Cache
}

// NewMarketDataService creates a new MarketDataService instance. cache may
// be nil to disable read caching.
func NewMarketDataService(assets domain.AssetRepository, prices domain.PriceSource, c *cache.Cache) *MarketDataService {
	return &MarketDataService{
		Assets: assets,
		Prices: prices,
		Cache:  c,
	}
}

// CurrentPrices returns the latest known quote per symbol.
func (s *MarketDataService) CurrentPrices(ctx context.Context) map[string]decimal.Decimal {
	return s.Prices.Snapshot()
}

// PriceBySymbol returns the latest quote for one symbol.
func (s *MarketDataService) PriceBySymbol(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = domain.NormalizeSymbol(symbol)
	price, ok := s.Prices.CurrentPrice(symbol)
	if !ok || !price.IsPositive() {
		return decimal.Zero, &domain.PriceUnavailableError{Symbol: symbol}
	}
	return price, nil
}

// AllAssets returns all tradable assets.
func (s *MarketDataService) AllAssets(ctx context.Context) ([]*domain.Asset, error) {
	if s.Cache != nil {
		if v, ok := s.Cache.Get(assetsCacheKey); ok {
			return v.([]*domain.Asset), nil
		}
	}
	assets, err := s.Assets.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(assetsCacheKey, assets)
	}
	return assets, nil
}

// AssetBySymbol returns one asset by its symbol, case-insensitively.
func (s *MarketDataService) AssetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	return s.Assets.GetBySymbol(ctx, domain.NormalizeSymbol(symbol))
}

// SearchAssets returns assets whose symbol or name contains the query.
func (s *MarketDataService) SearchAssets(ctx context.Context, query string) ([]*domain.Asset, error) {
	key := "assets:search:" + domain.NormalizeSymbol(query)
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			return v.([]*domain.Asset), nil
		}
	}
	assets, err := s.Assets.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(key, assets)
	}
	return assets, nil
}
