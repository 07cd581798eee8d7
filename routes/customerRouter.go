package routes

import (
	"food-marketplace/middleware"
	"food-marketplace/models"

	"github.com/gin-gonic/gin"
)

func CustomerRoutes(incomingRoutes *gin.Engine, h Handlers) {
	customer := incomingRoutes.Group("/customer")
	customer.POST("/signup", h.Customer.SignUp())
	customer.POST("/login", h.Customer.Login())

	authed := customer.Group("", middleware.Authentication(h.Tokens), middleware.RequireRole(models.RoleCustomer))
	authed.PATCH("/verify", h.Customer.Verify())
	authed.GET("/otp", h.Customer.RequestOtp())
	authed.GET("/profile", h.Customer.GetProfile())
	authed.PATCH("/profile", h.Customer.EditProfile())

	authed.POST("/cart", h.Customer.AddToCart())
	authed.GET("/cart", h.Customer.GetCart())
	authed.DELETE("/cart", h.Customer.DeleteCart())

	authed.POST("/offer/verify/:id", h.Customer.VerifyOffer())
	authed.POST("/create-payment", h.Customer.CreatePayment())

	authed.POST("/create-order", h.Customer.CreateOrder())
	authed.GET("/orders", h.Customer.GetOrders())
	authed.GET("/order/:id", h.Customer.GetOrder())
}
