package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"food-marketplace/cache"
	"food-marketplace/controllers"
	"food-marketplace/database/memstore"
	"food-marketplace/events"
	"food-marketplace/helpers"
	"food-marketplace/logger"
	"food-marketplace/routes"
	"food-marketplace/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const adminKey = "admin-key"

type otpInbox struct {
	mu   sync.Mutex
	last map[string]int
}

func (o *otpInbox) SendOtp(_ context.Context, phone string, otp int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last[phone] = otp
	return nil
}

type api struct {
	t      *testing.T
	router *gin.Engine
	inbox  *otpInbox
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	helpers.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { helpers.PasswordCost = bcrypt.DefaultCost })

	log := logger.Nop()
	stores := memstore.New()
	tokens := helpers.NewTokenHelper("test-secret", helpers.TokenTTL)
	inbox := &otpInbox{last: make(map[string]int)}
	hub := events.NewHub(nil, log)
	t.Cleanup(hub.Close)

	customers := services.NewCustomerService(stores.Customers, tokens, inbox, cache.NewMemoryThrottle(), time.Minute, log)
	carts := services.NewCartService(stores.Customers, stores.Foods, log)
	ledger := services.NewLedger(stores.Customers, stores.Transactions, stores.Offers, log)
	delivery := services.NewDeliveryService(stores.Couriers, stores.Vendors, stores.Orders, tokens, hub, log)
	orders := services.NewOrderService(stores, ledger, delivery, hub, log)
	vendors := services.NewVendorService(stores.Vendors, stores.Foods, stores.Offers, tokens, log)
	shopping := services.NewShoppingService(stores.Vendors, stores.Foods, stores.Offers)

	router := gin.New()
	routes.Register(router, routes.Handlers{
		Customer:    controllers.NewCustomerController(customers, carts, ledger, orders, log),
		Vendor:      controllers.NewVendorController(vendors, orders, log),
		Delivery:    controllers.NewDeliveryController(delivery, log),
		Admin:       controllers.NewAdminController(vendors, ledger, delivery, log),
		Shopping:    controllers.NewShoppingController(shopping, log),
		Hub:         hub,
		Tokens:      tokens,
		AdminAPIKey: adminKey,
		Log:         log,
	})
	return &api{t: t, router: router, inbox: inbox}
}

// call sends body as JSON and decodes the response into out when non-nil.
func (a *api) call(method, path, token string, body interface{}, out interface{}) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if token == adminKey {
		req.Header.Del("Authorization")
		req.Header.Set("X-API-KEY", adminKey)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

type authResponse struct {
	Data      map[string]interface{} `json:"data"`
	Signature string                 `json:"signature"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestOrderFlowOverHTTP(t *testing.T) {
	a := newAPI(t)

	var vendor map[string]interface{}
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/admin/vendor", adminKey, map[string]interface{}{
		"name": "Curry House", "owner_name": "Asha", "pin_code": "400001",
		"phone": "5550101", "email": "curry@example.com", "password": "spicy99",
	}, &vendor))

	var vendorAuth authResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/vandor/login", "", map[string]string{
		"email": "curry@example.com", "password": "spicy99",
	}, &vendorAuth))
	vendorToken := vendorAuth.Signature
	require.Equal(t, http.StatusOK, a.call(http.MethodPatch, "/vandor/service", vendorToken, nil, nil))

	var food map[string]interface{}
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/vandor/food", vendorToken, map[string]interface{}{
		"name": "Dal", "description": "lentils", "food_type": "veg", "ready_time": 20, "price": 10,
	}, &food))
	foodID := food["_id"].(string)

	var customerAuth authResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/customer/signup", "", map[string]string{
		"email": "jane@example.com", "password": "hunter22", "phone": "5551234",
	}, &customerAuth))
	token := customerAuth.Signature

	var failed errorResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/customer/cart", token, map[string]interface{}{"food_id": foodID, "unit": 2}, nil))
	assert.Equal(t, http.StatusForbidden, a.call(http.MethodPost, "/customer/create-payment", token, map[string]interface{}{"amount": 20}, &failed))
	assert.Equal(t, "FORBIDDEN", failed.Code)

	var verified authResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodPatch, "/customer/verify", token, map[string]int{"otp": a.inbox.last["5551234"]}, &verified))
	token = verified.Signature

	var txn map[string]interface{}
	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/customer/create-payment", token, map[string]interface{}{"amount": 20, "payment_mode": "COD"}, &txn))
	order := map[string]interface{}{
		"transaction_id": txn["_id"],
		"amount":         20,
		"items":          []map[string]interface{}{{"food_id": foodID, "unit": 2}},
	}

	var settlement struct {
		Order struct {
			ID           string  `json:"_id"`
			Total_amount float64 `json:"total_amount"`
			Order_status string  `json:"order_status"`
		} `json:"order"`
		Customer struct {
			Cart []interface{} `json:"cart"`
		} `json:"customer"`
		Warning string `json:"warning"`
	}
	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/customer/create-order", token, order, &settlement))
	assert.Equal(t, 20.0, settlement.Order.Total_amount)
	assert.Equal(t, "Waiting", settlement.Order.Order_status)
	assert.Empty(t, settlement.Customer.Cart)
	assert.NotEmpty(t, settlement.Warning, "no courier serves the pin code")

	assert.Equal(t, http.StatusConflict, a.call(http.MethodPost, "/customer/create-order", token, order, &failed))
	assert.Equal(t, "CONFLICT", failed.Code)

	var vendorOrders []map[string]interface{}
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/vandor/orders", vendorToken, nil, &vendorOrders))
	assert.Len(t, vendorOrders, 1)

	var processed map[string]interface{}
	require.Equal(t, http.StatusOK, a.call(http.MethodPut, "/vandor/order/"+settlement.Order.ID+"/process", vendorToken,
		map[string]interface{}{"status": "Accepted", "remarks": "cooking", "time": 30}, &processed))
	assert.Equal(t, "Accepted", processed["order_status"])

	var details map[string]interface{}
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/customer/order/"+settlement.Order.ID, token, nil, &details))
	assert.Len(t, details["lines"], 1)

	var restaurants []map[string]interface{}
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/shopping/400001", "", nil, &restaurants))
	assert.Len(t, restaurants, 1)
	assert.Equal(t, http.StatusNotFound, a.call(http.MethodGet, "/shopping/top-restaurants/999999", "", nil, nil))

	var txns []map[string]interface{}
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/admin/transactions", adminKey, nil, &txns))
	assert.Len(t, txns, 1)
}

func TestUnverifiedCustomerCannotOrder(t *testing.T) {
	a := newAPI(t)
	var auth authResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/customer/signup", "", map[string]string{
		"email": "bob@example.com", "password": "hunter22", "phone": "5550000",
	}, &auth))

	var failed errorResponse
	code := a.call(http.MethodPost, "/customer/create-order", auth.Signature, map[string]interface{}{
		"transaction_id": "64b7f0c2a1b2c3d4e5f60718",
		"amount":         10,
		"items":          []map[string]interface{}{{"food_id": "64b7f0c2a1b2c3d4e5f60719", "unit": 1}},
	}, &failed)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", failed.Code)
}

func TestAccessControlAndValidation(t *testing.T) {
	a := newAPI(t)
	var failed errorResponse

	assert.Equal(t, http.StatusUnauthorized, a.call(http.MethodGet, "/customer/profile", "", nil, &failed))
	assert.Equal(t, "UNAUTHORIZED", failed.Code)
	assert.Equal(t, http.StatusUnauthorized, a.call(http.MethodGet, "/admin/vendors", "", nil, nil))

	var auth authResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/customer/signup", "", map[string]string{
		"email": "amy@example.com", "password": "hunter22", "phone": "5552222",
	}, &auth))
	assert.Equal(t, http.StatusForbidden, a.call(http.MethodGet, "/vandor/foods", auth.Signature, nil, nil))

	assert.Equal(t, http.StatusBadRequest, a.call(http.MethodPost, "/customer/create-payment", auth.Signature, map[string]interface{}{"amount": 0}, &failed))
	assert.Equal(t, "VALIDATION", failed.Code)

	assert.Equal(t, http.StatusBadRequest, a.call(http.MethodGet, "/customer/cart", auth.Signature, nil, &failed))
	assert.Equal(t, "EMPTY_CART", failed.Code)

	assert.Equal(t, http.StatusConflict, a.call(http.MethodPost, "/customer/signup", "", map[string]string{
		"email": "amy@example.com", "password": "hunter22", "phone": "5552222",
	}, nil))

	assert.Equal(t, http.StatusUnauthorized, a.call(http.MethodPost, "/customer/login", "", map[string]string{
		"email": "amy@example.com", "password": "wrong-pass",
	}, &failed))
	assert.Equal(t, "UNAUTHORIZED", failed.Code)

	assert.Equal(t, http.StatusOK, a.call(http.MethodGet, "/customer/otp", auth.Signature, nil, nil))
	assert.Equal(t, http.StatusTooManyRequests, a.call(http.MethodGet, "/customer/otp", auth.Signature, nil, &failed))
	assert.Equal(t, "RATE_LIMITED", failed.Code)

	assert.Equal(t, http.StatusOK, a.call(http.MethodGet, "/health", "", nil, nil))
}

func TestDeliveryRoutes(t *testing.T) {
	a := newAPI(t)
	var auth authResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/delivery/signup", "", map[string]string{
		"email": "rider@example.com", "password": "pedal42", "phone": "5559876", "first_name": "Ria", "pin_code": "400001",
	}, &auth))
	id := auth.Data["_id"].(string)

	assert.Equal(t, http.StatusForbidden, a.call(http.MethodPut, "/delivery/change-status", auth.Signature, map[string]bool{"is_available": true}, nil))
	require.Equal(t, http.StatusOK, a.call(http.MethodPut, "/admin/delivery/verify", adminKey, map[string]interface{}{"_id": id, "status": true}, nil))

	var courier map[string]interface{}
	require.Equal(t, http.StatusOK, a.call(http.MethodPut, "/delivery/change-status", auth.Signature, map[string]bool{"is_available": true}, &courier))
	assert.Equal(t, true, courier["is_available"])

	var users []map[string]interface{}
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/admin/delivery/users", adminKey, nil, &users))
	assert.Len(t, users, 1)
}
