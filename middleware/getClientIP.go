package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the originating client IP, honoring proxy headers.
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.ClientIP()
}
