package controllers

import (
	"errors"
	"net/http"

	"food-marketplace/logger"
	"food-marketplace/middleware"
	"food-marketplace/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
)

var validate = validator.New()

var statusByCode = map[string]int{
	"EMPTY_CART":          http.StatusBadRequest,
	"INVALID_TRANSACTION": http.StatusBadRequest,
	"AMOUNT_MISMATCH":     http.StatusBadRequest,
	"MIXED_VENDORS":       http.StatusBadRequest,
	"VALIDATION":          http.StatusBadRequest,
	"NOT_FOUND":           http.StatusNotFound,
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"CONFLICT":            http.StatusConflict,
	"RATE_LIMITED":        http.StatusTooManyRequests,
}

// respondError writes {"error", "code"} with the status matching err. Anything
// unclassified is logged and hidden behind a generic message.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	code := models.ErrorCode(err)
	status, ok := statusByCode[code]
	if !ok {
		_ = c.Error(err)
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again", "code": "INTERNAL"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// bindJSON decodes and validates the body into dst, answering 400 itself on
// failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error(), "code": "VALIDATION"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error(), "code": "VALIDATION"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return false
	}
	return true
}

// principalID is the authenticated caller id. Routes guarantee it is set.
func principalID(c *gin.Context) string {
	p, _ := middleware.CurrentPrincipal(c)
	return p.ID
}
