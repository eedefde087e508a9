package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity resolves the caller from the X-User-Id header and stores it in the
// request context. Identity is trusted as supplied by the client; there is no
// token validation in this system.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
