package controllers

import (
	"net/http"

	"food-marketplace/logger"
	"food-marketplace/models"
	"food-marketplace/services"

	"github.com/gin-gonic/gin"
)

type VendorController struct {
	vendors *services.VendorService
	orders  *services.OrderService
	log     *logger.Logger
}

func NewVendorController(vendors *services.VendorService, orders *services.OrderService, log *logger.Logger) *VendorController {
	return &VendorController{vendors: vendors, orders: orders, log: log.WithComponent("vendor_controller")}
}

func (ctl *VendorController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.Credentials
		if !bindJSON(c, &in) {
			return
		}
		result, err := ctl.vendors.Login(c.Request.Context(), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ctl *VendorController) GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		vendor, err := ctl.vendors.Get(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, vendor)
	}
}

func (ctl *VendorController) EditProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.VendorUpdate
		if !bindJSON(c, &in) {
			return
		}
		vendor, err := ctl.vendors.EditProfile(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, vendor)
	}
}

func (ctl *VendorController) UpdateService() gin.HandlerFunc {
	return func(c *gin.Context) {
		vendor, err := ctl.vendors.ToggleService(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, vendor)
	}
}

func (ctl *VendorController) AddFood() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.FoodInput
		if !bindJSON(c, &in) {
			return
		}
		food, err := ctl.vendors.AddFood(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusCreated, food)
	}
}

func (ctl *VendorController) GetFoods() gin.HandlerFunc {
	return func(c *gin.Context) {
		foods, err := ctl.vendors.Foods(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, foods)
	}
}

func (ctl *VendorController) GetCurrentOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ctl.orders.VendorOrders(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctl *VendorController) GetOrderDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := ctl.orders.VendorOrder(c.Request.Context(), principalID(c), c.Param("id"))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (ctl *VendorController) ProcessOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ProcessOrderInput
		if !bindJSON(c, &in) {
			return
		}
		order, err := ctl.orders.ProcessOrder(c.Request.Context(), principalID(c), c.Param("id"), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (ctl *VendorController) GetOffers() gin.HandlerFunc {
	return func(c *gin.Context) {
		offers, err := ctl.vendors.Offers(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, offers)
	}
}

func (ctl *VendorController) AddOffer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.OfferInput
		if !bindJSON(c, &in) {
			return
		}
		offer, err := ctl.vendors.AddOffer(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusCreated, offer)
	}
}

func (ctl *VendorController) EditOffer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.OfferInput
		if !bindJSON(c, &in) {
			return
		}
		offer, err := ctl.vendors.EditOffer(c.Request.Context(), principalID(c), c.Param("id"), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, offer)
	}
}
