package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
// Handlers left nil are not routed.
type HandlerBundle struct {
	// Invoice endpoints
	GenerateInvoiceHandler     gin.HandlerFunc
	CreateDirectInvoiceHandler gin.HandlerFunc
	GetInvoiceHandler          gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
