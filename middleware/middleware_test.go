package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"food-marketplace/helpers"
	"food-marketplace/logger"
	"food-marketplace/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(tokens *helpers.TokenHelper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger.Nop()))
	r.GET("/vendor", Authentication(tokens), RequireRole(models.RoleVendor), func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.String(http.StatusOK, p.ID)
	})
	r.GET("/admin", ValidateAPIKey("k3y"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticationAndRoles(t *testing.T) {
	tokens := helpers.NewTokenHelper("secret", helpers.TokenTTL)
	r := newRouter(tokens)

	vendorToken, err := tokens.GenerateToken(models.Principal{ID: "v1", Role: models.RoleVendor})
	require.NoError(t, err)
	customerToken, err := tokens.GenerateToken(models.Principal{ID: "c1", Role: models.RoleCustomer})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/vendor", nil)
	w := serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/vendor", nil)
	req.Header.Set("Authorization", "Bearer "+vendorToken)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "v1", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/vendor?token="+vendorToken, nil)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/vendor", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/vendor", nil)
	req.Header.Set("Authorization", "Basic "+vendorToken)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestValidateAPIKey(t *testing.T) {
	r := newRouter(helpers.NewTokenHelper("secret", helpers.TokenTTL))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-API-KEY", "k3y")
	assert.Equal(t, http.StatusNoContent, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	assert.Equal(t, "fixed-id", serve(r, req).Header().Get(RequestIDHeader))
}
