package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/investhub/backend/internal/domain"
	"github.com/investhub/backend/internal/usecase/account"
	"github.com/investhub/backend/internal/usecase/marketdata"
	"github.com/investhub/backend/internal/usecase/portfolio"
	"github.com/investhub/backend/internal/usecase/trading"
	"github.com/investhub/backend/internal/usecase/watchlist"
)

// Server wires the router, services, and middleware.
type Server struct {
	R          *gin.Engine
	Accounts   *account.AccountService
	Trading    *trading.TradingService
	Portfolio  *portfolio.PortfolioService
	Watchlist  *watchlist.WatchlistService
	MarketData *marketdata.MarketDataService
	Auth       *TokenIssuer
	Logger     *zap.Logger
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewServer builds the gin engine with logging, recovery, CORS, and all
// routes. Everything under /api except /api/auth requires a bearer token.
func NewServer(
	accounts *account.AccountService,
	tradingSvc *trading.TradingService,
	portfolioSvc *portfolio.PortfolioService,
	watchlistSvc *watchlist.WatchlistService,
	marketData *marketdata.MarketDataService,
	auth *TokenIssuer,
	logger *zap.Logger,
	corsOrigin string,
) *Server {
	g := gin.New()

	// Request logging
	g.Use(func(cn *gin.Context) {
		start := time.Now()
		cn.Next()
		logger.Info("http_request",
			zap.String("method", cn.Request.Method),
			zap.String("path", cn.Request.URL.Path),
			zap.Int("status", cn.Writer.Status()),
			zap.String("ip", cn.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	})

	g.Use(gin.Recovery())

	// CORS
	g.Use(func(cn *gin.Context) {
		origin := cn.GetHeader("Origin")
		cn.Writer.Header().Set("Vary", "Origin")
		cn.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		cn.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		cn.Writer.Header().Set("Access-Control-Max-Age", "86400")
		if corsOrigin == "*" {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && origin == corsOrigin {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", corsOrigin)
		}
		if cn.Request.Method == http.MethodOptions {
			cn.AbortWithStatus(http.StatusNoContent)
			return
		}
		cn.Next()
	})

	s := &Server{
		R:          g,
		Accounts:   accounts,
		Trading:    tradingSvc,
		Portfolio:  portfolioSvc,
		Watchlist:  watchlistSvc,
		MarketData: marketData,
		Auth:       auth,
		Logger:     logger,
	}

	g.GET("/health", func(cn *gin.Context) { cn.JSON(http.StatusOK, gin.H{"ok": true}) })

	authGroup := g.Group("/api/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
	}

	api := g.Group("/api", s.requireAuth)
	{
		api.GET("/portfolio", s.getPortfolio)
		api.GET("/portfolio/balance", s.getBalance)
		api.GET("/portfolio/holdings", s.getHoldings)
		api.GET("/portfolio/holdings/:symbol", s.getHoldingBySymbol)
		api.GET("/portfolio/stats", s.getStatistics)

		api.POST("/transactions", s.createTransaction)
		api.GET("/transactions", s.getTransactions)
		api.GET("/transactions/:id", s.getTransactionByID)
		api.GET("/transactions/type/:type", s.getTransactionsByType)
		api.GET("/transactions/total/:type", s.getTotalAmountByType)
		api.GET("/transactions/asset/:symbol", s.getTransactionsByAsset)
		api.GET("/transactions/count/:symbol", s.getTransactionCountByAsset)

		api.GET("/watchlist", s.getWatchlist)
		api.POST("/watchlist/:symbol", s.addToWatchlist)
		api.DELETE("/watchlist/:symbol", s.removeFromWatchlist)
		api.GET("/watchlist/:symbol/check", s.checkWatchlist)

		api.GET("/market/prices", s.getPrices)
		api.GET("/market/prices/:symbol", s.getPriceBySymbol)
		api.GET("/market/assets", s.getAssets)
		api.GET("/market/assets/:symbol", s.getAssetBySymbol)
		api.GET("/market/search", s.searchAssets)

		api.POST("/account/reset", s.resetAccount)
	}

	return s
}

// writeError maps domain errors onto HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		exists     *domain.AlreadyExistsError
		noFunds    *domain.InsufficientFundsError
		noHoldings *domain.InsufficientHoldingsError
		noPrice    *domain.PriceUnavailableError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apiError{Code: "not_found", Message: notFound.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, apiError{Code: "invalid_input", Message: validation.Error()})
	case errors.As(err, &exists):
		c.JSON(http.StatusConflict, apiError{Code: "conflict", Message: exists.Error()})
	case errors.As(err, &noFunds):
		c.JSON(http.StatusBadRequest, apiError{Code: "insufficient_funds", Message: noFunds.Error()})
	case errors.As(err, &noHoldings):
		c.JSON(http.StatusBadRequest, apiError{Code: "insufficient_holdings", Message: noHoldings.Error()})
	case errors.As(err, &noPrice):
		c.JSON(http.StatusServiceUnavailable, apiError{Code: "price_unavailable", Message: noPrice.Error()})
	case errors.Is(err, account.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apiError{Code: "unauthorized", Message: "invalid credentials"})
	default:
		s.Logger.Error("internal_error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apiError{Code: "internal_server_error", Message: "internal server error"})
	}
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, apiError{Code: "bad_request", Message: msg})
}
