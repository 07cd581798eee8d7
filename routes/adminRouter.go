package routes

import (
	"food-marketplace/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(incomingRoutes *gin.Engine, h Handlers) {
	admin := incomingRoutes.Group("/admin", middleware.ValidateAPIKey(h.AdminAPIKey))
	admin.POST("/vendor", h.Admin.CreateVendor())
	admin.GET("/vendors", h.Admin.GetVendors())
	admin.GET("/vendor/:id", h.Admin.GetVendorByID())
	admin.GET("/transactions", h.Admin.GetTransactions())
	admin.GET("/transaction/:id", h.Admin.GetTransactionByID())
	admin.PUT("/transaction/:id/fail", h.Admin.FailTransaction())
	admin.PUT("/delivery/verify", h.Admin.VerifyDeliveryUser())
	admin.GET("/delivery/users", h.Admin.GetDeliveryUsers())
}
