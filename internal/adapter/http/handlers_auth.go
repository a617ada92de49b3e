package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/investhub/backend/internal/domain"
)

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "username and password are required")
		return
	}

	user, err := s.Accounts.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.issueToken(c, http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "username and password are required")
		return
	}

	user, err := s.Accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.issueToken(c, http.StatusOK, user)
}

func (s *Server) issueToken(c *gin.Context, status int, user *domain.User) {
	token, ttl, err := s.Auth.Issue(user)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(status, authResponse{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
		Username:  user.Username,
	})
}
