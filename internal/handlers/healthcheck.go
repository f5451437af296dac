package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Status is the root route the web frontend pings on load.
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "EduLearn Backend Running"})
}
