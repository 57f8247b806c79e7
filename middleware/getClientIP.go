package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller through gin, which only honours
// X-Forwarded-For and X-Real-IP when the immediate peer is a trusted proxy
// (see Engine.SetTrustedProxies, fed from TRUSTED_PROXIES).
func getClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
