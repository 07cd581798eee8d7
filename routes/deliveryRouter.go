package routes

import (
	"food-marketplace/middleware"
	"food-marketplace/models"

	"github.com/gin-gonic/gin"
)

func DeliveryRoutes(incomingRoutes *gin.Engine, h Handlers) {
	delivery := incomingRoutes.Group("/delivery")
	delivery.POST("/signup", h.Delivery.SignUp())
	delivery.POST("/login", h.Delivery.Login())

	authed := delivery.Group("", middleware.Authentication(h.Tokens), middleware.RequireRole(models.RoleDelivery))
	authed.PUT("/change-status", h.Delivery.ChangeStatus())
	authed.GET("/profile", h.Delivery.GetProfile())
	authed.PATCH("/profile", h.Delivery.EditProfile())
}
