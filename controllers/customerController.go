package controllers

import (
	"net/http"

	"food-marketplace/logger"
	"food-marketplace/models"
	"food-marketplace/services"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	customers *services.CustomerService
	carts     *services.CartService
	ledger    *services.Ledger
	orders    *services.OrderService
	log       *logger.Logger
}

func NewCustomerController(customers *services.CustomerService, carts *services.CartService, ledger *services.Ledger, orders *services.OrderService, log *logger.Logger) *CustomerController {
	return &CustomerController{
		customers: customers,
		carts:     carts,
		ledger:    ledger,
		orders:    orders,
		log:       log.WithComponent("customer_controller"),
	}
}

type verifyRequest struct {
	Otp int `json:"otp" validate:"required"`
}

func (ctl *CustomerController) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CustomerSignup
		if !bindJSON(c, &in) {
			return
		}
		result, err := ctl.customers.Signup(c.Request.Context(), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func (ctl *CustomerController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.Credentials
		if !bindJSON(c, &in) {
			return
		}
		result, err := ctl.customers.Login(c.Request.Context(), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ctl *CustomerController) Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in verifyRequest
		if !bindJSON(c, &in) {
			return
		}
		result, err := ctl.customers.Verify(c.Request.Context(), principalID(c), in.Otp)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ctl *CustomerController) RequestOtp() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ctl.customers.RequestOtp(c.Request.Context(), principalID(c)); err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your registered phone number"})
	}
}

func (ctl *CustomerController) GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := ctl.customers.Profile(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func (ctl *CustomerController) EditProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.ProfileUpdate
		if !bindJSON(c, &in) {
			return
		}
		customer, err := ctl.customers.EditProfile(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func (ctl *CustomerController) AddToCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CartInput
		if !bindJSON(c, &in) {
			return
		}
		cart, err := ctl.carts.AddToCart(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func (ctl *CustomerController) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ctl.carts.GetCart(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func (ctl *CustomerController) DeleteCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ctl.carts.ClearCart(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func (ctl *CustomerController) VerifyOffer() gin.HandlerFunc {
	return func(c *gin.Context) {
		offer, err := ctl.ledger.VerifyOffer(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Offer is valid", "offer": offer})
	}
}

func (ctl *CustomerController) CreatePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.PaymentInput
		if !bindJSON(c, &in) {
			return
		}
		txn, err := ctl.ledger.CreatePayment(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, txn)
	}
}

func (ctl *CustomerController) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.OrderInput
		if !bindJSON(c, &in) {
			return
		}
		settlement, err := ctl.orders.CreateOrder(c.Request.Context(), principalID(c), in)
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, settlement)
	}
}

func (ctl *CustomerController) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ctl.orders.CustomerOrders(c.Request.Context(), principalID(c))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctl *CustomerController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := ctl.orders.CustomerOrder(c.Request.Context(), principalID(c), c.Param("id"))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
