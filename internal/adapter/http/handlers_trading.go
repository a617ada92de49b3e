package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/investhub/backend/internal/domain"
)

func (s *Server) createTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "type, assetSymbol, and quantity are required")
		return
	}

	txType, ok := domain.ParseTransactionType(req.Type)
	if !ok {
		s.badRequest(c, "type must be BUY or SELL")
		return
	}

	tx, err := s.Trading.Execute(c.Request.Context(), currentUser(c), txType, req.AssetSymbol, req.Quantity)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) getTransactions(c *gin.Context) {
	txs, err := s.Trading.Transactions(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionResponses(txs))
}

func (s *Server) getTransactionByID(c *gin.Context) {
	tx, err := s.Trading.TransactionByID(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) getTransactionsByType(c *gin.Context) {
	txType, ok := domain.ParseTransactionType(c.Param("type"))
	if !ok {
		s.badRequest(c, "type must be BUY or SELL")
		return
	}

	txs, err := s.Trading.TransactionsByType(c.Request.Context(), currentUser(c), txType)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionResponses(txs))
}

func (s *Server) getTotalAmountByType(c *gin.Context) {
	txType, ok := domain.ParseTransactionType(c.Param("type"))
	if !ok {
		s.badRequest(c, "type must be BUY or SELL")
		return
	}

	total, err := s.Trading.TotalAmountByType(c.Request.Context(), currentUser(c), txType)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": txType, "total": total})
}

func (s *Server) getTransactionsByAsset(c *gin.Context) {
	txs, err := s.Trading.TransactionsByAsset(c.Request.Context(), currentUser(c), c.Param("symbol"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionResponses(txs))
}

func (s *Server) getTransactionCountByAsset(c *gin.Context) {
	count, err := s.Trading.TransactionCountByAsset(c.Request.Context(), currentUser(c), c.Param("symbol"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": domain.NormalizeSymbol(c.Param("symbol")), "count": count})
}
