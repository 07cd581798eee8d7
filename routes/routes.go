package routes

import (
	"net/http"

	"food-marketplace/controllers"
	"food-marketplace/events"
	"food-marketplace/helpers"
	"food-marketplace/logger"
	"food-marketplace/metrics"
	"food-marketplace/middleware"
	"food-marketplace/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Customer    *controllers.CustomerController
	Vendor      *controllers.VendorController
	Delivery    *controllers.DeliveryController
	Admin       *controllers.AdminController
	Shopping    *controllers.ShoppingController
	Hub         *events.Hub
	Tokens      *helpers.TokenHelper
	AdminAPIKey string
	Log         *logger.Logger
}

func Register(router *gin.Engine, h Handlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found", "code": "NOT_FOUND"})
	})

	AdminRoutes(router, h)
	CustomerRoutes(router, h)
	DeliveryRoutes(router, h)
	ShoppingRoutes(router, h)
	VendorRoutes(router, h)

	router.GET("/ws/orders",
		middleware.Authentication(h.Tokens),
		middleware.RequireRole(models.RoleVendor),
		controllers.HandleWebSocket(h.Hub, h.Log),
	)
}
