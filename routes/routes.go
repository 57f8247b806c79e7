package routes

import (
	"time"

	"hyperinvoice/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterInvoiceRoutes registers invoice endpoints. The direct and lookup
// routes exist only when their handlers are set.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	{
		api.POST("/generate", hb.GenerateInvoiceHandler)
		if hb.CreateDirectInvoiceHandler != nil {
			api.POST("", hb.CreateDirectInvoiceHandler)
		}
		if hb.GetInvoiceHandler != nil {
			api.GET("/:invoiceNumber", hb.GetInvoiceHandler)
		}
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	health := hb.HealthHandler
	if health == nil {
		health = handlers.HealthHandler
	}
	r.GET("/health", health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterInvoiceRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
