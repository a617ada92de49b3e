package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) resetAccount(c *gin.Context) {
	result, err := s.Accounts.Reset(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
