package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-marketplace/helpers"
	"food-marketplace/logger"
	"food-marketplace/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourierSignup struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=64"`
	Phone      string `json:"phone" validate:"required,min=7,max=15"`
	First_name string `json:"first_name" validate:"required,min=2,max=100"`
	Last_name  string `json:"last_name" validate:"omitempty,max=100"`
	Address    string `json:"address" validate:"omitempty,max=200"`
	Pin_code   string `json:"pin_code" validate:"required"`
}

type DeliveryService struct {
	couriers  CourierStore
	vendors   VendorStore
	orders    OrderStore
	tokens    *helpers.TokenHelper
	publisher Publisher
	now       Clock
	log       *logger.Logger
}

func NewDeliveryService(couriers CourierStore, vendors VendorStore, orders OrderStore, tokens *helpers.TokenHelper, publisher Publisher, log *logger.Logger) *DeliveryService {
	return &DeliveryService{
		couriers:  couriers,
		vendors:   vendors,
		orders:    orders,
		tokens:    tokens,
		publisher: publisher,
		now:       time.Now,
		log:       log.WithComponent("delivery_service"),
	}
}

// AssignOrderForDelivery binds the first verified, available courier in the
// vendor's pin code to the order. It returns models.ErrNoDeliveryAvailable
// when nobody can take it.
func (s *DeliveryService) AssignOrderForDelivery(ctx context.Context, orderID, vendorID string) (*models.Order, error) {
	vid, err := parseID(vendorID)
	if err != nil {
		return nil, err
	}
	oid, err := parseID(orderID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.FindByID(ctx, vid)
	if err != nil {
		return nil, fmt.Errorf("vendor %s: %w", vendorID, err)
	}
	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}

	candidates, err := s.couriers.FindAvailable(ctx, vendor.Pin_code)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.notify(ctx, models.EventDeliveryUnavailable, order)
		return order, fmt.Errorf("pin code %s: %w", vendor.Pin_code, models.ErrNoDeliveryAvailable)
	}

	courier := candidates[0]
	if err := s.orders.AssignDelivery(ctx, order.ID, courier.ID.Hex()); err != nil {
		return order, fmt.Errorf("assign courier %s: %w", courier.ID.Hex(), err)
	}
	order.Delivery_id = courier.ID.Hex()
	s.log.Info("order assigned for delivery", "order_id", order.Order_id, "delivery_id", order.Delivery_id)
	s.notify(ctx, models.EventDeliveryAssigned, order)
	return order, nil
}

func (s *DeliveryService) Signup(ctx context.Context, in CourierSignup) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.couriers.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: delivery user already exists", models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	salt, err := helpers.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hashed, err := helpers.HashPassword(in.Password, salt)
	if err != nil {
		return nil, err
	}
	now := s.now()
	courier := &models.DeliveryUser{
		ID:         primitive.NewObjectID(),
		Email:      email,
		Password:   hashed,
		Salt:       salt,
		First_name: in.First_name,
		Last_name:  in.Last_name,
		Address:    in.Address,
		Phone:      in.Phone,
		Pin_code:   in.Pin_code,
		Created_at: now,
		Updated_at: now,
	}
	if err := s.couriers.Create(ctx, courier); err != nil {
		return nil, err
	}
	return s.issue(courier)
}

func (s *DeliveryService) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	courier, err := s.couriers.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: email or password is incorrect", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !helpers.VerifyPassword(in.Password, courier.Salt, courier.Password) {
		return nil, fmt.Errorf("%w: email or password is incorrect", models.ErrUnauthorized)
	}
	return s.issue(courier)
}

func (s *DeliveryService) Profile(ctx context.Context, courierID string) (*models.DeliveryUser, error) {
	id, err := parseID(courierID)
	if err != nil {
		return nil, err
	}
	return s.couriers.FindByID(ctx, id)
}

func (s *DeliveryService) EditProfile(ctx context.Context, courierID string, update models.ProfileUpdate) (*models.DeliveryUser, error) {
	id, err := parseID(courierID)
	if err != nil {
		return nil, err
	}
	if err := s.couriers.UpdateProfile(ctx, id, update); err != nil {
		return nil, err
	}
	return s.couriers.FindByID(ctx, id)
}

// ChangeStatus toggles availability. Only verified couriers may go online.
func (s *DeliveryService) ChangeStatus(ctx context.Context, courierID string, status models.CourierStatus) (*models.DeliveryUser, error) {
	courier, err := s.Profile(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if status.Is_available && !courier.Verified {
		return nil, fmt.Errorf("%w: delivery user is not verified", models.ErrForbidden)
	}
	if err := s.couriers.SetStatus(ctx, courier.ID, status); err != nil {
		return nil, err
	}
	return s.couriers.FindByID(ctx, courier.ID)
}

// SetVerified is the admin approval of a courier.
func (s *DeliveryService) SetVerified(ctx context.Context, courierID string, verified bool) (*models.DeliveryUser, error) {
	id, err := parseID(courierID)
	if err != nil {
		return nil, err
	}
	if err := s.couriers.SetVerified(ctx, id, verified); err != nil {
		return nil, err
	}
	return s.couriers.FindByID(ctx, id)
}

func (s *DeliveryService) List(ctx context.Context) ([]models.DeliveryUser, error) {
	return s.couriers.List(ctx)
}

func (s *DeliveryService) issue(courier *models.DeliveryUser) (*AuthResult, error) {
	signature, err := s.tokens.GenerateToken(models.Principal{
		ID:       courier.ID.Hex(),
		Email:    courier.Email,
		Verified: courier.Verified,
		Role:     models.RoleDelivery,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Data: courier, Signature: signature}, nil
}

func (s *DeliveryService) notify(ctx context.Context, event string, order *models.Order) {
	publish(ctx, s.publisher, s.log, models.Notification{
		Event:       event,
		Vendor_id:   order.Vendor_id.Hex(),
		Customer_id: order.Customer_id.Hex(),
		Order_id:    order.Order_id,
		Payload:     order,
		Created_at:  s.now(),
	})
}

// publish never fails the caller; listeners are best effort.
func publish(ctx context.Context, p Publisher, log *logger.Logger, n models.Notification) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, n); err != nil {
		log.Warn("failed to publish event", "event", n.Event, "order_id", n.Order_id, "error", err)
	}
}
