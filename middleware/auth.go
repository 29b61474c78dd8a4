package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EricVikberg/M7011E/auth"
)

func tokenFromHeader(c *gin.Context) string {
	raw := c.GetHeader("Authorization")
	return strings.TrimPrefix(raw, "Bearer ")
}

// ValidateToken requires a valid JWT and attaches the caller's identity.
func ValidateToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromHeader(c)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		userID, role, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// AuthOptional attaches identity when a valid token is present and leaves
// the request anonymous otherwise. A failed probe is not an error.
func AuthOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := tokenFromHeader(c); raw != "" {
			if userID, role, err := auth.ParseToken(raw, secret); err == nil {
				c.Set("user_id", userID)
				c.Set("role", role)
			}
		}
		c.Next()
	}
}
