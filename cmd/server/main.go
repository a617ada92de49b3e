package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/investhub/backend/internal/adapter/binance"
	httpadapter "github.com/investhub/backend/internal/adapter/http"
	"github.com/investhub/backend/internal/adapter/repository/memory"
	"github.com/investhub/backend/internal/adapter/repository/postgres"
	"github.com/investhub/backend/internal/cache"
	"github.com/investhub/backend/internal/config"
	"github.com/investhub/backend/internal/domain"
	"github.com/investhub/backend/internal/usecase/account"
	"github.com/investhub/backend/internal/usecase/marketdata"
	"github.com/investhub/backend/internal/usecase/portfolio"
	"github.com/investhub/backend/internal/usecase/seeder"
	"github.com/investhub/backend/internal/usecase/trading"
	"github.com/investhub/backend/internal/usecase/watchlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 1. Storage: Postgres when DATABASE_URL is set, in-memory otherwise.
	var store domain.Store
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database_connect_failed", zap.Error(err))
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			logger.Fatal("database_migrate_failed", zap.Error(err))
		}
		store = postgres.NewStore(db)
		logger.Info("storage_ready", zap.String("backend", "postgres"))
	} else {
		store = memory.NewStore()
		logger.Info("storage_ready", zap.String("backend", "memory"))
	}

	// 2. Seed the tradable assets.
	if cfg.SeedAssets {
		if err := seeder.NewAssetSeeder(store.Assets(), logger).Seed(ctx); err != nil {
			logger.Fatal("asset_seed_failed", zap.Error(err))
		}
	}

	// 3. Live prices from Binance ticker streams.
	symbols := make([]string, 0, len(seeder.DefaultAssets))
	for _, a := range seeder.DefaultAssets {
		symbols = append(symbols, a.Symbol)
	}
	feed := binance.NewFeed(cfg.BinanceWS, symbols, logger)
	go func() {
		if err := feed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("price_feed_stopped", zap.Error(err))
		}
	}()

	// 4. Response cache for asset lookups.
	assetCache, err := cache.New(1<<20, cfg.CacheTTL)
	if err != nil {
		logger.Fatal("cache_init_failed", zap.Error(err))
	}

	// 5. Services.
	accounts := account.NewAccountService(store, logger)
	tradingSvc := trading.NewTradingService(store, feed, logger)
	portfolioSvc := portfolio.NewPortfolioService(store, feed)
	watchlistSvc := watchlist.NewWatchlistService(store)
	marketData := marketdata.NewMarketDataService(store.Assets(), feed, assetCache)
	tokens := httpadapter.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// 6. HTTP server.
	server := httpadapter.NewServer(accounts, tradingSvc, portfolioSvc, watchlistSvc, marketData, tokens, logger, cfg.CORSOrigin)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.R,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http_server_listening", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	waitForShutdown(ctx, srv, logger)
}

// waitForShutdown blocks until SIGTERM or SIGINT and drains the HTTP server.
func waitForShutdown(ctx context.Context, srv *http.Server, logger *zap.Logger) {
	<-ctx.Done()
	logger.Info("shutdown_signal_received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("http_server_stopped")
}
