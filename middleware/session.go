package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EricVikberg/M7011E/sessions"
)

// EnsureSession resolves the caller's anonymous session token, issuing and
// persisting a new one on first contact. Authenticated callers are left
// alone: their identity already names a cart.
func EnsureSession(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") != "" {
			c.Next()
			return
		}

		if key, err := c.Cookie(sessions.CookieName); err == nil && key != "" {
			if ok, err := store.Touch(c.Request.Context(), key); err == nil && ok {
				c.Set("session_key", key)
				c.Next()
				return
			}
		}

		key, err := store.Issue(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			c.Abort()
			return
		}

		c.SetCookie(sessions.CookieName, key, int(store.TTL().Seconds()), "/", "", false, true)
		c.Set("session_key", key)
		c.Next()
	}
}
