package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/middleware"
)

type AuthHandler struct {
	log *logger.Logger
}

func NewAuthHandler(log *logger.Logger) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler")}
}

// GET /auth/me
// RequireAuth runs first; by the time this handler executes the caller is
// verified.
func (h *AuthHandler) GetMe(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing or invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"uid":    identity.UID,
		"email":  identity.Email,
	})
}
