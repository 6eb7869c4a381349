package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"addressbook-backend/internal/shared/response"
)

// APIKey guards a route group with a single shared secret. A missing
// header is 401, a mismatched one is 403.
func APIKey(validKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-KEY")

		if apiKey == "" {
			response.Error(c, http.StatusUnauthorized, "API key is required", nil)
			c.Abort()
			return
		}

		if apiKey != validKey {
			response.Error(c, http.StatusForbidden, "Invalid API key", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
