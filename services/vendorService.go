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

type VendorInput struct {
	Name       string   `json:"name" validate:"required,min=2,max=100"`
	Owner_name string   `json:"owner_name" validate:"required,min=2,max=100"`
	Food_type  []string `json:"food_type"`
	Pin_code   string   `json:"pin_code" validate:"required"`
	Address    string   `json:"address" validate:"omitempty,max=200"`
	Phone      string   `json:"phone" validate:"required,min=7,max=15"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=6,max=64"`
}

type FoodInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category"`
	Food_type   string   `json:"food_type" validate:"required"`
	Ready_time  int      `json:"ready_time" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	Images      []string `json:"images"`
}

type OfferInput struct {
	Offer_type     string     `json:"offer_type" validate:"required,oneof=VENDOR GENERIC"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description"`
	Min_value      float64    `json:"min_value" validate:"gte=0"`
	Offer_amount   float64    `json:"offer_amount" validate:"gt=0"`
	Start_validity *time.Time `json:"start_validity"`
	End_validity   *time.Time `json:"end_validity"`
	Promo_code     string     `json:"promo_code" validate:"required"`
	Promo_type     string     `json:"promo_type" validate:"required"`
	Bank           []string   `json:"bank"`
	Bins           []int      `json:"bins"`
	Pin_code       string     `json:"pin_code" validate:"required"`
	Is_active      bool       `json:"is_active"`
}

type VendorService struct {
	vendors VendorStore
	foods   FoodStore
	offers  OfferStore
	tokens  *helpers.TokenHelper
	now     Clock
	log     *logger.Logger
}

func NewVendorService(vendors VendorStore, foods FoodStore, offers OfferStore, tokens *helpers.TokenHelper, log *logger.Logger) *VendorService {
	return &VendorService{
		vendors: vendors,
		foods:   foods,
		offers:  offers,
		tokens:  tokens,
		now:     time.Now,
		log:     log.WithComponent("vendor_service"),
	}
}

// CreateVendor is the admin onboarding of a restaurant.
func (s *VendorService) CreateVendor(ctx context.Context, in VendorInput) (*models.Vendor, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.vendors.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a vendor is already registered with this email", models.ErrConflict)
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
	vendor := &models.Vendor{
		ID:           primitive.NewObjectID(),
		Name:         in.Name,
		Owner_name:   in.Owner_name,
		Food_type:    in.Food_type,
		Pin_code:     in.Pin_code,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        email,
		Password:     hashed,
		Salt:         salt,
		Cover_images: []string{},
		Foods:        []primitive.ObjectID{},
		Created_at:   now,
		Updated_at:   now,
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, err
	}
	s.log.Info("vendor created", "vendor_id", vendor.ID.Hex(), "pin_code", vendor.Pin_code)
	return vendor, nil
}

func (s *VendorService) List(ctx context.Context) ([]models.Vendor, error) {
	return s.vendors.List(ctx)
}

func (s *VendorService) Get(ctx context.Context, vendorID string) (*models.Vendor, error) {
	id, err := parseID(vendorID)
	if err != nil {
		return nil, err
	}
	return s.vendors.FindByID(ctx, id)
}

func (s *VendorService) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	vendor, err := s.vendors.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: login credential is not valid", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !helpers.VerifyPassword(in.Password, vendor.Salt, vendor.Password) {
		return nil, fmt.Errorf("%w: login credential is not valid", models.ErrUnauthorized)
	}
	signature, err := s.tokens.GenerateToken(models.Principal{
		ID:       vendor.ID.Hex(),
		Email:    vendor.Email,
		Verified: true,
		Role:     models.RoleVendor,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Data: vendor, Signature: signature}, nil
}

func (s *VendorService) EditProfile(ctx context.Context, vendorID string, update models.VendorUpdate) (*models.Vendor, error) {
	id, err := parseID(vendorID)
	if err != nil {
		return nil, err
	}
	if err := s.vendors.UpdateProfile(ctx, id, update); err != nil {
		return nil, err
	}
	return s.vendors.FindByID(ctx, id)
}

// ToggleService flips whether the vendor accepts orders.
func (s *VendorService) ToggleService(ctx context.Context, vendorID string) (*models.Vendor, error) {
	vendor, err := s.Get(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if err := s.vendors.SetServiceAvailable(ctx, vendor.ID, !vendor.Service_available); err != nil {
		return nil, err
	}
	vendor.Service_available = !vendor.Service_available
	return vendor, nil
}

func (s *VendorService) AddFood(ctx context.Context, vendorID string, in FoodInput) (*models.Food, error) {
	vendor, err := s.Get(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	food := &models.Food{
		ID:          primitive.NewObjectID(),
		Vendor_id:   vendor.ID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Food_type:   in.Food_type,
		Ready_time:  in.Ready_time,
		Price:       money(in.Price).InexactFloat64(),
		Images:      in.Images,
		Created_at:  now,
		Updated_at:  now,
	}
	if food.Images == nil {
		food.Images = []string{}
	}
	if err := s.foods.Create(ctx, food); err != nil {
		return nil, err
	}
	if err := s.vendors.AddFood(ctx, vendor.ID, food.ID); err != nil {
		return nil, err
	}
	return food, nil
}

func (s *VendorService) Foods(ctx context.Context, vendorID string) ([]models.Food, error) {
	id, err := parseID(vendorID)
	if err != nil {
		return nil, err
	}
	return s.foods.FindByVendors(ctx, []primitive.ObjectID{id})
}

func (s *VendorService) Offers(ctx context.Context, vendorID string) ([]models.Offer, error) {
	id, err := parseID(vendorID)
	if err != nil {
		return nil, err
	}
	return s.offers.FindForVendor(ctx, id)
}

func (s *VendorService) AddOffer(ctx context.Context, vendorID string, in OfferInput) (*models.Offer, error) {
	vendor, err := s.Get(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(in); err != nil {
		return nil, err
	}
	now := s.now()
	offer := &models.Offer{
		ID:         primitive.NewObjectID(),
		Vendors:    []primitive.ObjectID{vendor.ID},
		Created_at: now,
	}
	applyOffer(offer, in, now)
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *VendorService) EditOffer(ctx context.Context, vendorID, offerID string, in OfferInput) (*models.Offer, error) {
	vid, err := parseID(vendorID)
	if err != nil {
		return nil, err
	}
	oid, err := parseID(offerID)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(in); err != nil {
		return nil, err
	}
	offer, err := s.offers.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	owned := false
	for _, v := range offer.Vendors {
		if v == vid {
			owned = true
			break
		}
	}
	if !owned {
		return nil, fmt.Errorf("offer %s: %w", offerID, models.ErrNotFound)
	}
	applyOffer(offer, in, s.now())
	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func checkWindow(in OfferInput) error {
	if in.Start_validity != nil && in.End_validity != nil && in.End_validity.Before(*in.Start_validity) {
		return fmt.Errorf("%w: offer validity ends before it starts", models.ErrValidation)
	}
	return nil
}

func applyOffer(offer *models.Offer, in OfferInput, now time.Time) {
	offer.Offer_type = in.Offer_type
	offer.Title = in.Title
	offer.Description = in.Description
	offer.Min_value = in.Min_value
	offer.Offer_amount = in.Offer_amount
	offer.Start_validity = in.Start_validity
	offer.End_validity = in.End_validity
	offer.Promo_code = in.Promo_code
	offer.Promo_type = in.Promo_type
	offer.Bank = in.Bank
	offer.Bins = in.Bins
	offer.Pin_code = in.Pin_code
	offer.Is_active = in.Is_active
	offer.Updated_at = now
}
