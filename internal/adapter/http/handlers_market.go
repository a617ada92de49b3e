package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/investhub/backend/internal/domain"
)

func (s *Server) getPrices(c *gin.Context) {
	c.JSON(http.StatusOK, s.MarketData.CurrentPrices(c.Request.Context()))
}

func (s *Server) getPriceBySymbol(c *gin.Context) {
	price, err := s.MarketData.PriceBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": domain.NormalizeSymbol(c.Param("symbol")), "price": price})
}

func (s *Server) getAssets(c *gin.Context) {
	assets, err := s.MarketData.AllAssets(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAssetResponses(assets))
}

func (s *Server) getAssetBySymbol(c *gin.Context) {
	asset, err := s.MarketData.AssetBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assetResponse{Symbol: asset.Symbol, Name: asset.Name})
}

func (s *Server) searchAssets(c *gin.Context) {
	assets, err := s.MarketData.SearchAssets(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAssetResponses(assets))
}
