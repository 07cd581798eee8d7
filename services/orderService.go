package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-marketplace/helpers"
	"food-marketplace/logger"
	"food-marketplace/metrics"
	"food-marketplace/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// orderCodeAttempts bounds retries when a generated order code collides.
const orderCodeAttempts = 5

type OrderItemInput struct {
	Food_id string `json:"food_id" validate:"required"`
	Unit    int    `json:"unit"`
}

type OrderInput struct {
	Transaction_id string           `json:"transaction_id" validate:"required"`
	Amount         float64          `json:"amount" validate:"gte=0"`
	Items          []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// Settlement is the outcome of a successful CreateOrder. Warning is set when
// the order was created but a follow-up step failed: the cart could not be
// cleared or no delivery partner took it.
type Settlement struct {
	Customer *models.Customer `json:"customer"`
	Order    *models.Order    `json:"order"`
	Warning  string           `json:"warning,omitempty"`
}

type ProcessOrderInput struct {
	Status  string `json:"status" validate:"required"`
	Remarks string `json:"remarks" validate:"max=500"`
	Time    int    `json:"time" validate:"gte=0"`
}

type OrderService struct {
	customers    CustomerStore
	foods        FoodStore
	orders       OrderStore
	transactions TransactionStore
	ledger       *Ledger
	delivery     *DeliveryService
	publisher    Publisher
	now          Clock
	newCode      func() (string, error)
	log          *logger.Logger
}

func NewOrderService(stores Stores, ledger *Ledger, delivery *DeliveryService, publisher Publisher, log *logger.Logger) *OrderService {
	return &OrderService{
		customers:    stores.Customers,
		foods:        stores.Foods,
		orders:       stores.Orders,
		transactions: stores.Transactions,
		ledger:       ledger,
		delivery:     delivery,
		publisher:    publisher,
		now:          time.Now,
		newCode:      helpers.GenerateOrderCode,
		log:          log.WithComponent("order_service"),
	}
}

// CreateOrder settles an open transaction into an order. Prices are taken
// from the catalog, never from the request. The transaction is claimed with a
// compare-and-swap on its status so a replayed request fails with
// models.ErrConflict instead of creating a second order.
func (s *OrderService) CreateOrder(ctx context.Context, customerID string, in OrderInput) (*Settlement, error) {
	settlement, err := s.createOrder(ctx, customerID, in)
	if err != nil {
		metrics.SettlementRejected.WithLabelValues(models.ErrorCode(err)).Inc()
		return nil, err
	}
	metrics.OrdersSettled.Inc()
	return settlement, nil
}

func (s *OrderService) createOrder(ctx context.Context, customerID string, in OrderInput) (*Settlement, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !customer.Verified {
		return nil, fmt.Errorf("%w: customer is not verified", models.ErrForbidden)
	}

	txn, err := s.ledger.Validate(ctx, customerID, in.Transaction_id)
	if err != nil {
		return nil, err
	}

	items, vendorID, total, err := s.price(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	if !money(in.Amount).Equal(money(txn.Order_value)) || !money(txn.Gross_amount).Equal(total) {
		return nil, fmt.Errorf("%w: total %s, transaction %.2f, paid %.2f",
			models.ErrAmountMismatch, total.StringFixed(2), txn.Gross_amount, in.Amount)
	}

	now := s.now()
	code, err := s.newCode()
	if err != nil {
		return nil, err
	}
	order := &models.Order{
		ID:             primitive.NewObjectID(),
		Order_id:       code,
		Customer_id:    customer.ID,
		Vendor_id:      vendorID,
		Transaction_id: txn.ID,
		Items:          items,
		Total_amount:   total.InexactFloat64(),
		Paid_amount:    in.Amount,
		Order_date:     now,
		Order_status:   models.OrderWaiting,
		Ready_time:     models.DefaultReadyTime,
		Created_at:     now,
		Updated_at:     now,
	}

	link := models.TransactionLink{Vendor_id: vendorID.Hex(), Order_id: order.Order_id}
	if err := s.transactions.Transition(ctx, txn.ID, models.TransactionOpen, models.TransactionConfirmed, link); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, fmt.Errorf("%w: transaction already settled", models.ErrConflict)
		}
		return nil, err
	}

	if err := s.insertOrder(ctx, txn.ID, order); err != nil {
		s.releaseTransaction(ctx, txn.ID)
		return nil, err
	}

	var warnings []string
	if err := s.attachOrder(ctx, customer.ID, order.ID); err != nil {
		s.log.Error("order created but customer not updated", "order_id", order.Order_id, "customer_id", customerID, "error", err)
		warnings = append(warnings, "order placed but cart could not be cleared")
	}

	settlement := &Settlement{Order: order}
	assigned, err := s.delivery.AssignOrderForDelivery(ctx, order.ID.Hex(), vendorID.Hex())
	switch {
	case err == nil:
		settlement.Order = assigned
	case errors.Is(err, models.ErrNoDeliveryAvailable):
		metrics.DeliveryUnassigned.Inc()
		warnings = append(warnings, err.Error())
	default:
		s.log.Error("delivery assignment failed", "order_id", order.Order_id, "error", err)
		warnings = append(warnings, "delivery assignment failed")
	}

	publish(ctx, s.publisher, s.log, models.Notification{
		Event:       models.EventOrderCreated,
		Vendor_id:   vendorID.Hex(),
		Customer_id: customerID,
		Order_id:    order.Order_id,
		Payload:     settlement.Order,
		Created_at:  now,
	})

	settlement.Customer = customer
	if updated, err := s.customers.FindByID(ctx, customer.ID); err == nil {
		settlement.Customer = updated
	} else {
		s.log.Error("reloading customer after settlement", "customer_id", customerID, "error", err)
	}
	settlement.Warning = strings.Join(warnings, "; ")
	s.log.Info("order settled", "order_id", order.Order_id, "transaction_id", txn.ID.Hex(), "total", order.Total_amount)
	return settlement, nil
}

// attachOrder links the committed order to the customer. Transient failures
// get one retry.
func (s *OrderService) attachOrder(ctx context.Context, customerID, orderID primitive.ObjectID) error {
	err := s.customers.AttachOrder(ctx, customerID, orderID)
	if err == nil || errors.Is(err, models.ErrNotFound) {
		return err
	}
	return s.customers.AttachOrder(ctx, customerID, orderID)
}

// price resolves the submitted items against the catalog. Unknown foods and
// non-positive units are dropped.
func (s *OrderService) price(ctx context.Context, in []OrderItemInput) ([]models.OrderItem, primitive.ObjectID, decimal.Decimal, error) {
	ids := make([]primitive.ObjectID, 0, len(in))
	for _, item := range in {
		if id, err := primitive.ObjectIDFromHex(item.Food_id); err == nil {
			ids = append(ids, id)
		}
	}
	foods, err := s.foods.FindByIDs(ctx, ids)
	if err != nil {
		return nil, primitive.NilObjectID, decimal.Zero, err
	}
	catalog := make(map[primitive.ObjectID]models.Food, len(foods))
	for _, f := range foods {
		catalog[f.ID] = f
	}

	var (
		items    []models.OrderItem
		vendorID primitive.ObjectID
		total    = decimal.Zero
	)
	for _, item := range in {
		id, err := primitive.ObjectIDFromHex(item.Food_id)
		if err != nil || item.Unit <= 0 {
			continue
		}
		food, ok := catalog[id]
		if !ok {
			continue
		}
		if vendorID.IsZero() {
			vendorID = food.Vendor_id
		} else if vendorID != food.Vendor_id {
			return nil, primitive.NilObjectID, decimal.Zero, models.ErrMixedVendors
		}
		total = total.Add(money(food.Price).Mul(decimal.NewFromInt(int64(item.Unit))))
		items = append(items, models.OrderItem{Food: food.ID, Unit: item.Unit})
	}
	if len(items) == 0 {
		return nil, primitive.NilObjectID, decimal.Zero, models.ErrEmptyCart
	}
	return items, vendorID, total, nil
}

func (s *OrderService) insertOrder(ctx context.Context, txnID primitive.ObjectID, order *models.Order) error {
	for attempt := 1; ; attempt++ {
		err := s.orders.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, models.ErrDuplicateOrderID) || attempt == orderCodeAttempts {
			return err
		}
		code, err := s.newCode()
		if err != nil {
			return err
		}
		order.Order_id = code
		link := models.TransactionLink{Vendor_id: order.Vendor_id.Hex(), Order_id: code}
		if err := s.transactions.Transition(ctx, txnID, models.TransactionConfirmed, models.TransactionConfirmed, link); err != nil {
			return err
		}
	}
}

// releaseTransaction reopens a claimed transaction whose order never made it
// to the store.
func (s *OrderService) releaseTransaction(ctx context.Context, txnID primitive.ObjectID) {
	err := s.transactions.Transition(ctx, txnID, models.TransactionConfirmed, models.TransactionOpen, models.TransactionLink{})
	if err != nil {
		s.log.Error("failed to reopen transaction", "transaction_id", txnID.Hex(), "error", err)
	}
}

func (s *OrderService) CustomerOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByIDs(ctx, customer.Orders)
}

func (s *OrderService) CustomerOrder(ctx context.Context, customerID, orderID string) (*models.OrderDetails, error) {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Customer_id.Hex() != customerID {
		return nil, fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	return s.details(ctx, order)
}

func (s *OrderService) VendorOrders(ctx context.Context, vendorID string) ([]models.Order, error) {
	id, err := parseID(vendorID)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByVendor(ctx, id)
}

func (s *OrderService) VendorOrder(ctx context.Context, vendorID, orderID string) (*models.OrderDetails, error) {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Vendor_id.Hex() != vendorID {
		return nil, fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	return s.details(ctx, order)
}

// ProcessOrder records the vendor's decision on an order.
func (s *OrderService) ProcessOrder(ctx context.Context, vendorID, orderID string, in ProcessOrderInput) (*models.Order, error) {
	if !models.ValidVendorStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown order status %q", models.ErrValidation, in.Status)
	}
	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Vendor_id.Hex() != vendorID {
		return nil, fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}

	readyTime := order.Ready_time
	if in.Time > 0 {
		readyTime = in.Time
	}
	if err := s.orders.UpdateStatus(ctx, order.ID, in.Status, in.Remarks, readyTime); err != nil {
		return nil, err
	}
	order.Order_status = in.Status
	order.Remarks = in.Remarks
	order.Ready_time = readyTime

	publish(ctx, s.publisher, s.log, models.Notification{
		Event:       models.EventOrderStatus,
		Vendor_id:   vendorID,
		Customer_id: order.Customer_id.Hex(),
		Order_id:    order.Order_id,
		Payload:     order,
		Created_at:  s.now(),
	})
	return order, nil
}

func (s *OrderService) find(ctx context.Context, orderID string) (*models.Order, error) {
	id, err := parseID(orderID)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) details(ctx context.Context, order *models.Order) (*models.OrderDetails, error) {
	ids := make([]primitive.ObjectID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.Food)
	}
	foods, err := s.foods.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	details := &models.OrderDetails{Order: *order, Lines: make([]models.OrderLine, 0, len(order.Items))}
	for _, item := range order.Items {
		food, ok := byID[item.Food]
		if !ok {
			food = models.Food{ID: item.Food}
		}
		details.Lines = append(details.Lines, models.OrderLine{Food: food, Unit: item.Unit})
	}
	return details, nil
}
