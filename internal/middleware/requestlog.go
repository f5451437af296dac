package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edulearn/edulearn-backend/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLog tags every request with an id and logs one access line on
// completion.
func RequestLog(log *logger.Logger) gin.HandlerFunc {
	accessLog := log.With("middleware", "RequestLog")
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		accessLog.Info("Request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
