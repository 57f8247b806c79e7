package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const validationFailed = "Validation Failed"

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Timestamp: time.Now(),
					Status:    http.StatusInternalServerError,
					Error:     http.StatusText(http.StatusInternalServerError),
					Message:   "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string) {
	GetLogger().Warn(message,
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path))
	c.JSON(status, ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}

// JSONValidationError sends a 400 listing the offending fields.
func JSONValidationError(c *gin.Context, fieldErrors map[string]string) {
	GetLogger().Warn(validationFailed,
		zap.Any("fieldErrors", fieldErrors),
		zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Timestamp:   time.Now(),
		Status:      http.StatusBadRequest,
		Error:       validationFailed,
		FieldErrors: fieldErrors,
	})
}
