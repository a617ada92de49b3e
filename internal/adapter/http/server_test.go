package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/investhub/backend/internal/adapter/repository/memory"
	"github.com/investhub/backend/internal/usecase/account"
	"github.com/investhub/backend/internal/usecase/marketdata"
	"github.com/investhub/backend/internal/usecase/portfolio"
	"github.com/investhub/backend/internal/usecase/seeder"
	"github.com/investhub/backend/internal/usecase/trading"
	"github.com/investhub/backend/internal/usecase/watchlist"
)

type fixedPrices map[string]decimal.Decimal

func (p fixedPrices) CurrentPrice(symbol string) (decimal.Decimal, bool) {
	price, ok := p[symbol]
	return price, ok
}

func (p fixedPrices) Snapshot() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	logger := zap.NewNop()
	require.NoError(t, seeder.NewAssetSeeder(store.Assets(), logger).Seed(context.Background()))

	prices := fixedPrices{
		"BTCUSDT": decimal.RequireFromString("10000"),
		"ETHUSDT": decimal.RequireFromString("2000"),
	}

	return NewServer(
		account.NewAccountService(store, logger),
		trading.NewTradingService(store, prices, logger),
		portfolio.NewPortfolioService(store, prices),
		watchlist.NewWatchlistService(store),
		marketdata.NewMarketDataService(store.Assets(), prices, nil),
		NewTokenIssuer("test-secret", time.Hour),
		logger,
		"*",
	)
}

func (s *Server) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.R.ServeHTTP(rec, req)
	return rec
}

func (s *Server) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Duplicate username conflicts.
	rec = s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/portfolio", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/portfolio", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBuyThenPortfolio(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice")

	rec := s.do(t, http.MethodPost, "/api/transactions", token, gin.H{
		"type":        "BUY",
		"assetSymbol": "btcusdt",
		"quantity":    "2",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tx transactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tx))
	assert.Equal(t, "BTCUSDT", tx.AssetSymbol)
	assert.Equal(t, "BUY", tx.Type)
	assert.True(t, tx.TotalPrice.Equal(decimal.RequireFromString("20000")))

	rec = s.do(t, http.MethodGet, "/api/portfolio", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var overview portfolioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.True(t, overview.Balance.Equal(decimal.RequireFromString("10000")))
	require.Len(t, overview.Holdings, 1)
	assert.Equal(t, "BTCUSDT", overview.Holdings[0].AssetSymbol)
	assert.True(t, overview.TotalValue.Equal(decimal.RequireFromString("30000")))

	rec = s.do(t, http.MethodGet, "/api/transactions/"+tx.ID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateTransactionRejectsBadInput(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice")

	// Unknown type.
	rec := s.do(t, http.MethodPost, "/api/transactions", token, gin.H{
		"type":        "HOLD",
		"assetSymbol": "BTCUSDT",
		"quantity":    "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-positive quantity.
	rec = s.do(t, http.MethodPost, "/api/transactions", token, gin.H{
		"type":        "BUY",
		"assetSymbol": "BTCUSDT",
		"quantity":    "-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown asset.
	rec = s.do(t, http.MethodPost, "/api/transactions", token, gin.H{
		"type":        "BUY",
		"assetSymbol": "NOPEUSDT",
		"quantity":    "1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Asset exists but has no quote.
	rec = s.do(t, http.MethodPost, "/api/transactions", token, gin.H{
		"type":        "BUY",
		"assetSymbol": "DOGEUSDT",
		"quantity":    "1",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Selling without holdings.
	rec = s.do(t, http.MethodPost, "/api/transactions", token, gin.H{
		"type":        "SELL",
		"assetSymbol": "ETHUSDT",
		"quantity":    "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "insufficient_holdings", apiErr.Code)
}

func TestWatchlistEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice")

	rec := s.do(t, http.MethodPost, "/api/watchlist/btcusdt", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Duplicate add conflicts.
	rec = s.do(t, http.MethodPost, "/api/watchlist/BTCUSDT", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/watchlist", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []watchlistEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "BTCUSDT", entries[0].Symbol)
	assert.Equal(t, "Bitcoin", entries[0].Name)

	rec = s.do(t, http.MethodGet, "/api/watchlist/BTCUSDT/check", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"watched":true`)

	rec = s.do(t, http.MethodDelete, "/api/watchlist/BTCUSDT", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/watchlist/BTCUSDT", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarketEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice")

	rec := s.do(t, http.MethodGet, "/api/market/assets", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var assets []assetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assets))
	assert.Len(t, assets, len(seeder.DefaultAssets))

	rec = s.do(t, http.MethodGet, "/api/market/prices/btcusdt", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"10000"`)

	rec = s.do(t, http.MethodGet, "/api/market/prices/DOGEUSDT", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/market/search?q=bit", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assets))
	require.Len(t, assets, 1)
	assert.Equal(t, "BTCUSDT", assets[0].Symbol)
}

func TestResetEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice")

	rec := s.do(t, http.MethodPost, "/api/transactions", token, gin.H{
		"type":        "BUY",
		"assetSymbol": "BTCUSDT",
		"quantity":    "1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/account/reset", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"30000"`)

	rec = s.do(t, http.MethodGet, "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/portfolio/holdings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/portfolio", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.R.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUsersAreIsolated(t *testing.T) {
	s := newTestServer(t)
	alice := s.registerAndLogin(t, "alice")
	bob := s.registerAndLogin(t, "bob")

	rec := s.do(t, http.MethodPost, "/api/transactions", alice, gin.H{
		"type":        "BUY",
		"assetSymbol": "BTCUSDT",
		"quantity":    "1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tx transactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tx))

	// Bob cannot see Alice's transaction.
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/transactions/%s", tx.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/portfolio/holdings", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}
