package handlers

import (
	"net/http"

	"hyperinvoice/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	snapshot := utils.GetHealthStatus()
	status := "ok"
	if (snapshot.Mongo != nil && !*snapshot.Mongo) || (snapshot.Redis != nil && !*snapshot.Redis) {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"message": "Hi, I'm HyperInvoice",
		"health":  snapshot,
	})
}
