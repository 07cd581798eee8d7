package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateAPIKey guards the admin surface with the X-API-KEY header. An
// empty configured key locks the surface entirely.
func ValidateAPIKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		given := c.GetHeader("X-API-KEY")
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(given), []byte(apiKey)) != 1 {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing API key")
			return
		}
		c.Next()
	}
}
