package controllers

import (
	"net/http"

	"food-marketplace/logger"
	"food-marketplace/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	vendors  *services.VendorService
	ledger   *services.Ledger
	delivery *services.DeliveryService
	log      *logger.Logger
}

func NewAdminController(vendors *services.VendorService, ledger *services.Ledger, delivery *services.DeliveryService, log *logger.Logger) *AdminController {
	return &AdminController{vendors: vendors, ledger: ledger, delivery: delivery, log: log.WithComponent("admin_controller")}
}

type verifyCourierRequest struct {
	ID     string `json:"_id" validate:"required"`
	Status bool   `json:"status"`
}

func (ctl *AdminController) CreateVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.VendorInput
		if !bindJSON(c, &in) {
			return
		}
		vendor, err := ctl.vendors.CreateVendor(c.Request.Context(), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusCreated, vendor)
	}
}

func (ctl *AdminController) GetVendors() gin.HandlerFunc {
	return func(c *gin.Context) {
		vendors, err := ctl.vendors.List(c.Request.Context())
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, vendors)
	}
}

func (ctl *AdminController) GetVendorByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		vendor, err := ctl.vendors.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, vendor)
	}
}

func (ctl *AdminController) GetTransactions() gin.HandlerFunc {
	return func(c *gin.Context) {
		txns, err := ctl.ledger.List(c.Request.Context())
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, txns)
	}
}

func (ctl *AdminController) GetTransactionByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		txn, err := ctl.ledger.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, txn)
	}
}

func (ctl *AdminController) FailTransaction() gin.HandlerFunc {
	return func(c *gin.Context) {
		txn, err := ctl.ledger.Fail(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, txn)
	}
}

func (ctl *AdminController) VerifyDeliveryUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in verifyCourierRequest
		if !bindJSON(c, &in) {
			return
		}
		courier, err := ctl.delivery.SetVerified(c.Request.Context(), in.ID, in.Status)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, courier)
	}
}

func (ctl *AdminController) GetDeliveryUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		couriers, err := ctl.delivery.List(c.Request.Context())
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, couriers)
	}
}
