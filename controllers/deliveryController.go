package controllers

import (
	"net/http"

	"food-marketplace/logger"
	"food-marketplace/models"
	"food-marketplace/services"

	"github.com/gin-gonic/gin"
)

type DeliveryController struct {
	delivery *services.DeliveryService
	log      *logger.Logger
}

func NewDeliveryController(delivery *services.DeliveryService, log *logger.Logger) *DeliveryController {
	return &DeliveryController{delivery: delivery, log: log.WithComponent("delivery_controller")}
}

func (ctl *DeliveryController) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CourierSignup
		if !bindJSON(c, &in) {
			return
		}
		result, err := ctl.delivery.Signup(c.Request.Context(), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func (ctl *DeliveryController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.Credentials
		if !bindJSON(c, &in) {
			return
		}
		result, err := ctl.delivery.Login(c.Request.Context(), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ctl *DeliveryController) GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		courier, err := ctl.delivery.Profile(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, courier)
	}
}

func (ctl *DeliveryController) EditProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.ProfileUpdate
		if !bindJSON(c, &in) {
			return
		}
		courier, err := ctl.delivery.EditProfile(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, courier)
	}
}

func (ctl *DeliveryController) ChangeStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.CourierStatus
		if !bindJSON(c, &in) {
			return
		}
		courier, err := ctl.delivery.ChangeStatus(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, courier)
	}
}
