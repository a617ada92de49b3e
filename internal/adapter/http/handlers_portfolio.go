package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type portfolioResponse struct {
	Balance    decimal.Decimal   `json:"balance"`
	Holdings   []holdingResponse `json:"holdings"`
	TotalValue decimal.Decimal   `json:"totalValue"`
}

func (s *Server) getPortfolio(c *gin.Context) {
	overview, err := s.Portfolio.Portfolio(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolioResponse{
		Balance:    overview.Balance,
		Holdings:   toHoldingResponses(overview.Holdings),
		TotalValue: overview.TotalValue,
	})
}

func (s *Server) getBalance(c *gin.Context) {
	balance, err := s.Portfolio.Balance(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

func (s *Server) getHoldings(c *gin.Context) {
	holdings, err := s.Portfolio.Holdings(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHoldingResponses(holdings))
}

func (s *Server) getHoldingBySymbol(c *gin.Context) {
	holding, err := s.Portfolio.HoldingBySymbol(c.Request.Context(), currentUser(c), c.Param("symbol"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHoldingResponse(holding))
}

func (s *Server) getStatistics(c *gin.Context) {
	stats, err := s.Portfolio.Statistics(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
