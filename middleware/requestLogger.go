package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger stores a request-scoped logger under "logger" in the Gin
// context and echoes the request id back to the caller.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)
		c.Set("logger", logger.With(
			zap.String("requestId", requestID),
			zap.String("ip", getClientIP(c)),
		))
		c.Next()
	}
}
