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

type CustomerSignup struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=64"`
	Phone      string `json:"phone" validate:"required,min=7,max=15"`
	First_name string `json:"first_name" validate:"omitempty,min=2,max=100"`
	Last_name  string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Address    string `json:"address" validate:"omitempty,max=200"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by every signup, login and verification call.
type AuthResult struct {
	Data      interface{} `json:"data"`
	Signature string      `json:"signature"`
}

type CustomerService struct {
	customers   CustomerStore
	tokens      *helpers.TokenHelper
	sms         OtpSender
	throttle    Throttle
	otpCooldown time.Duration
	now         Clock
	log         *logger.Logger
}

func NewCustomerService(customers CustomerStore, tokens *helpers.TokenHelper, sms OtpSender, throttle Throttle, otpCooldown time.Duration, log *logger.Logger) *CustomerService {
	return &CustomerService{
		customers:   customers,
		tokens:      tokens,
		sms:         sms,
		throttle:    throttle,
		otpCooldown: otpCooldown,
		now:         time.Now,
		log:         log.WithComponent("customer_service"),
	}
}

func (s *CustomerService) Signup(ctx context.Context, in CustomerSignup) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.customers.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: customer already exists", models.ErrConflict)
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
	otp, expiry, err := helpers.GenerateOtp(now)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:         primitive.NewObjectID(),
		Email:      email,
		Password:   hashed,
		Salt:       salt,
		First_name: in.First_name,
		Last_name:  in.Last_name,
		Address:    in.Address,
		Phone:      in.Phone,
		Otp:        otp,
		Otp_expiry: expiry,
		Cart:       []models.CartItem{},
		Orders:     []primitive.ObjectID{},
		Created_at: now,
		Updated_at: now,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	// The account stays usable when the SMS gateway is down; the customer
	// can ask for a fresh code.
	if err := s.sms.SendOtp(ctx, customer.Phone, otp); err != nil {
		s.log.Warn("failed to send signup otp", "customer_id", customer.ID.Hex(), "error", err)
	}

	s.log.Info("customer signed up", "customer_id", customer.ID.Hex())
	return s.issue(customer)
}

func (s *CustomerService) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	customer, err := s.customers.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: email or password is incorrect", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !helpers.VerifyPassword(in.Password, customer.Salt, customer.Password) {
		return nil, fmt.Errorf("%w: email or password is incorrect", models.ErrUnauthorized)
	}
	return s.issue(customer)
}

// Verify redeems the customer's OTP and marks the account verified.
func (s *CustomerService) Verify(ctx context.Context, customerID string, otp int) (*AuthResult, error) {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !helpers.OtpMatches(customer.Otp, customer.Otp_expiry, otp, s.now()) {
		return nil, fmt.Errorf("%w: invalid or expired otp", models.ErrValidation)
	}
	if err := s.customers.MarkVerified(ctx, customer.ID); err != nil {
		return nil, err
	}
	customer.Verified = true
	return s.issue(customer)
}

// RequestOtp issues a fresh OTP, at most once per cooldown window.
func (s *CustomerService) RequestOtp(ctx context.Context, customerID string) error {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return err
	}
	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, "otp:"+customer.ID.Hex(), s.otpCooldown)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: wait before requesting another otp", models.ErrRateLimited)
		}
	}

	otp, expiry, err := helpers.GenerateOtp(s.now())
	if err != nil {
		return err
	}
	if err := s.customers.SetOtp(ctx, customer.ID, otp, expiry); err != nil {
		return err
	}
	if err := s.sms.SendOtp(ctx, customer.Phone, otp); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

func (s *CustomerService) Profile(ctx context.Context, customerID string) (*models.Customer, error) {
	return s.load(ctx, customerID)
}

func (s *CustomerService) EditProfile(ctx context.Context, customerID string, update models.ProfileUpdate) (*models.Customer, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	if err := s.customers.UpdateProfile(ctx, id, update); err != nil {
		return nil, err
	}
	return s.customers.FindByID(ctx, id)
}

func (s *CustomerService) load(ctx context.Context, customerID string) (*models.Customer, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	return s.customers.FindByID(ctx, id)
}

func (s *CustomerService) issue(customer *models.Customer) (*AuthResult, error) {
	signature, err := s.tokens.GenerateToken(models.Principal{
		ID:       customer.ID.Hex(),
		Email:    customer.Email,
		Verified: customer.Verified,
		Role:     models.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Data: customer, Signature: signature}, nil
}
