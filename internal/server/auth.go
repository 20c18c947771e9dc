package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/dashboard/internal/auth/domain"
	"go.uber.org/zap"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) Login(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, message := s.authsvc.Authenticate(c.Request.Context(), fields)
	switch message {
	case "":
	case authdomain.MessageInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"message": message})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": message})
		return
	}

	if err := s.sessions.Start(c, user); err != nil {
		s.log.Error("failed to start session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": authdomain.MessageSomethingWentWrong})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}})
}

func (s *Server) Logout(c *gin.Context) {
	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}})
}
