package routes

import (
	"food-marketplace/middleware"
	"food-marketplace/models"

	"github.com/gin-gonic/gin"
)

// VendorRoutes mounts under /vandor, the path existing clients call.
func VendorRoutes(incomingRoutes *gin.Engine, h Handlers) {
	vendor := incomingRoutes.Group("/vandor")
	vendor.POST("/login", h.Vendor.Login())

	authed := vendor.Group("", middleware.Authentication(h.Tokens), middleware.RequireRole(models.RoleVendor))
	authed.GET("/profile", h.Vendor.GetProfile())
	authed.PATCH("/profile", h.Vendor.EditProfile())
	authed.PATCH("/service", h.Vendor.UpdateService())

	authed.POST("/food", h.Vendor.AddFood())
	authed.GET("/foods", h.Vendor.GetFoods())

	authed.GET("/orders", h.Vendor.GetCurrentOrders())
	authed.GET("/order/:id", h.Vendor.GetOrderDetails())
	authed.PUT("/order/:id/process", h.Vendor.ProcessOrder())

	authed.GET("/offers", h.Vendor.GetOffers())
	authed.POST("/offer", h.Vendor.AddOffer())
	authed.PUT("/offer/:id", h.Vendor.EditOffer())
}
