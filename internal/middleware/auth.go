package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/services"
)

// identityKey is where RequireAuth stores the verified caller for handlers
// downstream.
const identityKey = "identity"

type AuthMiddleware struct {
	log      *logger.Logger
	verifier services.TokenVerifier
}

func NewAuthMiddleware(log *logger.Logger, verifier services.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		log:      log.With("middleware", "AuthMiddleware"),
		verifier: verifier,
	}
}

// RequireAuth rejects requests without a valid bearer token. Failures all
// map to the same 401 body; the real cause only goes to the log.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing or invalid token"})
			return
		}
		identity, err := am.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			am.log.Debug("Token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing or invalid token"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the verified caller set by RequireAuth, or nil when
// the route ran without it.
func IdentityFrom(c *gin.Context) *services.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*services.Identity)
	return identity
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
