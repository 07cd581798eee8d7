package middleware

import (
	"net/http"
	"strings"

	"food-marketplace/helpers"
	"food-marketplace/models"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Authentication validates the signature carried in the Authorization header
// ("Bearer <token>"), the legacy "token" header, or the "token" query
// parameter used by websocket clients.
func Authentication(tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := extractToken(c)
		if clientToken == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization token is missing")
			return
		}
		claims, err := tokens.ValidateToken(clientToken)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}
		c.Set(principalKey, claims.Principal())
		c.Next()
	}
}

// RequireRole rejects principals of any other role. It must run after
// Authentication.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization token is missing")
			return
		}
		if p.Role != role {
			abort(c, http.StatusForbidden, "FORBIDDEN", "this resource requires a "+string(role)+" account")
			return
		}
		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if token := c.GetHeader("token"); token != "" {
		return token
	}
	return c.Query("token")
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}
