package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/investhub/backend/internal/domain"
)

func (s *Server) getWatchlist(c *gin.Context) {
	entries, err := s.Watchlist.Watchlist(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWatchlistResponses(entries))
}

func (s *Server) addToWatchlist(c *gin.Context) {
	entry, err := s.Watchlist.Add(c.Request.Context(), currentUser(c), c.Param("symbol"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, watchlistEntryResponse{Symbol: entry.AssetSymbol, Name: entry.AssetName})
}

func (s *Server) removeFromWatchlist(c *gin.Context) {
	if err := s.Watchlist.Remove(c.Request.Context(), currentUser(c), c.Param("symbol")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) checkWatchlist(c *gin.Context) {
	watched, err := s.Watchlist.Contains(c.Request.Context(), currentUser(c), c.Param("symbol"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": domain.NormalizeSymbol(c.Param("symbol")), "watched": watched})
}
