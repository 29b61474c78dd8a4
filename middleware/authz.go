package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EricVikberg/M7011E/auth"
)

// RequireCapability gates a route on the caller's role holding the
// capability. Must run after ValidateToken.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Allow(c.GetString("role"), capability) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
