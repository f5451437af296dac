package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Soft errors stay HTTP 200 with a status field in the body; only the auth
// gate uses a real error status.
func RespondSoftError(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "error", "message": message})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
