package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"food-marketplace/database/memstore"
	"food-marketplace/helpers"
	"food-marketplace/logger"
	"food-marketplace/models"
	"food-marketplace/services"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testPin = "400001"

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Notification
}

func (p *recordingPublisher) Publish(_ context.Context, n models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, n)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, n := range p.events {
		out = append(out, n.Event)
	}
	return out
}

type recordingSender struct {
	mu   sync.Mutex
	sent map[string]int
	err  error
}

func (s *recordingSender) SendOtp(_ context.Context, phone string, otp int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sent == nil {
		s.sent = make(map[string]int)
	}
	s.sent[phone] = otp
	return s.err
}

type fixture struct {
	ctx       context.Context
	stores    services.Stores
	tokens    *helpers.TokenHelper
	sms       *recordingSender
	events    *recordingPublisher
	customers *services.CustomerService
	carts     *services.CartService
	ledger    *services.Ledger
	delivery  *services.DeliveryService
	orders    *services.OrderService
	vendors   *services.VendorService
	shopping  *services.ShoppingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	helpers.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { helpers.PasswordCost = bcrypt.DefaultCost })

	log := logger.Nop()
	stores := memstore.New()
	tokens := helpers.NewTokenHelper("test-secret", helpers.TokenTTL)
	sms := &recordingSender{}
	events := &recordingPublisher{}

	ledger := services.NewLedger(stores.Customers, stores.Transactions, stores.Offers, log)
	delivery := services.NewDeliveryService(stores.Couriers, stores.Vendors, stores.Orders, tokens, events, log)
	return &fixture{
		ctx:       context.Background(),
		stores:    stores,
		tokens:    tokens,
		sms:       sms,
		events:    events,
		customers: services.NewCustomerService(stores.Customers, tokens, sms, nil, time.Minute, log),
		carts:     services.NewCartService(stores.Customers, stores.Foods, log),
		ledger:    ledger,
		delivery:  delivery,
		orders:    services.NewOrderService(stores, ledger, delivery, events, log),
		vendors:   services.NewVendorService(stores.Vendors, stores.Foods, stores.Offers, tokens, log),
		shopping:  services.NewShoppingService(stores.Vendors, stores.Foods, stores.Offers),
	}
}

func (f *fixture) seedVendor(t *testing.T, pin string, rating float64) *models.Vendor {
	t.Helper()
	v := &models.Vendor{
		ID:                primitive.NewObjectID(),
		Name:              "Vendor " + pin,
		Email:             primitive.NewObjectID().Hex() + "@vendor.io",
		Pin_code:          pin,
		Service_available: true,
		Rating:            rating,
	}
	require.NoError(t, f.stores.Vendors.Create(f.ctx, v))
	return v
}

func (f *fixture) seedFood(t *testing.T, vendor *models.Vendor, price float64, readyTime int) *models.Food {
	t.Helper()
	food := &models.Food{
		ID:          primitive.NewObjectID(),
		Vendor_id:   vendor.ID,
		Name:        "Dish",
		Description: "tasty",
		Food_type:   "veg",
		Ready_time:  readyTime,
		Price:       price,
	}
	require.NoError(t, f.stores.Foods.Create(f.ctx, food))
	require.NoError(t, f.stores.Vendors.AddFood(f.ctx, vendor.ID, food.ID))
	return food
}

func (f *fixture) seedCustomer(t *testing.T, verified bool) *models.Customer {
	t.Helper()
	c := &models.Customer{
		ID:       primitive.NewObjectID(),
		Email:    primitive.NewObjectID().Hex() + "@customer.io",
		Phone:    "5550001",
		Verified: verified,
	}
	require.NoError(t, f.stores.Customers.Create(f.ctx, c))
	return c
}

func (f *fixture) seedCourier(t *testing.T, pin string, verified, available bool) *models.DeliveryUser {
	t.Helper()
	d := &models.DeliveryUser{
		ID:           primitive.NewObjectID(),
		Email:        primitive.NewObjectID().Hex() + "@courier.io",
		Pin_code:     pin,
		Verified:     verified,
		Is_available: available,
	}
	require.NoError(t, f.stores.Couriers.Create(f.ctx, d))
	return d
}

func (f *fixture) pay(t *testing.T, customer *models.Customer, amount float64) *models.Transaction {
	t.Helper()
	txn, err := f.ledger.CreatePayment(f.ctx, customer.ID.Hex(), services.PaymentInput{Amount: amount})
	require.NoError(t, err)
	return txn
}
