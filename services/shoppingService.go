package services

import (
	"context"
	"fmt"
	"time"

	"food-marketplace/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	topRestaurantsLimit = 10
	quickFoodMinutes    = 30
)

// ShoppingService answers the public catalog queries, all scoped by pin code.
type ShoppingService struct {
	vendors VendorStore
	foods   FoodStore
	offers  OfferStore
	now     Clock
}

func NewShoppingService(vendors VendorStore, foods FoodStore, offers OfferStore) *ShoppingService {
	return &ShoppingService{vendors: vendors, foods: foods, offers: offers, now: time.Now}
}

func (s *ShoppingService) FoodAvailability(ctx context.Context, pinCode string) ([]models.VendorWithFoods, error) {
	vendors, err := s.vendors.FindServiceable(ctx, pinCode, 0)
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, fmt.Errorf("no food available in %s: %w", pinCode, models.ErrNotFound)
	}
	return s.withFoods(ctx, vendors)
}

func (s *ShoppingService) TopRestaurants(ctx context.Context, pinCode string) ([]models.Vendor, error) {
	vendors, err := s.vendors.FindServiceable(ctx, pinCode, topRestaurantsLimit)
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, fmt.Errorf("no restaurants in %s: %w", pinCode, models.ErrNotFound)
	}
	return vendors, nil
}

func (s *ShoppingService) FoodsIn30Min(ctx context.Context, pinCode string) ([]models.Food, error) {
	foods, err := s.SearchFoods(ctx, pinCode)
	if err != nil {
		return nil, err
	}
	quick := make([]models.Food, 0, len(foods))
	for _, f := range foods {
		if f.Ready_time <= quickFoodMinutes {
			quick = append(quick, f)
		}
	}
	if len(quick) == 0 {
		return nil, fmt.Errorf("no quick food in %s: %w", pinCode, models.ErrNotFound)
	}
	return quick, nil
}

func (s *ShoppingService) SearchFoods(ctx context.Context, pinCode string) ([]models.Food, error) {
	vendors, err := s.vendors.FindServiceable(ctx, pinCode, 0)
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, fmt.Errorf("no food available in %s: %w", pinCode, models.ErrNotFound)
	}
	ids := make([]primitive.ObjectID, 0, len(vendors))
	for _, v := range vendors {
		ids = append(ids, v.ID)
	}
	return s.foods.FindByVendors(ctx, ids)
}

// AvailableOffers lists active offers for pinCode whose window is open now.
func (s *ShoppingService) AvailableOffers(ctx context.Context, pinCode string) ([]models.Offer, error) {
	offers, err := s.offers.FindActiveByPinCode(ctx, pinCode)
	if err != nil {
		return nil, err
	}
	now := s.now()
	open := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.InWindow(now) {
			open = append(open, o)
		}
	}
	if len(open) == 0 {
		return nil, fmt.Errorf("no offers in %s: %w", pinCode, models.ErrNotFound)
	}
	return open, nil
}

func (s *ShoppingService) RestaurantByID(ctx context.Context, vendorID string) (*models.VendorWithFoods, error) {
	id, err := parseID(vendorID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.withFoods(ctx, []models.Vendor{*vendor})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *ShoppingService) withFoods(ctx context.Context, vendors []models.Vendor) ([]models.VendorWithFoods, error) {
	ids := make([]primitive.ObjectID, 0, len(vendors))
	for _, v := range vendors {
		ids = append(ids, v.ID)
	}
	foods, err := s.foods.FindByVendors(ctx, ids)
	if err != nil {
		return nil, err
	}
	byVendor := make(map[primitive.ObjectID][]models.Food)
	for _, f := range foods {
		byVendor[f.Vendor_id] = append(byVendor[f.Vendor_id], f)
	}
	out := make([]models.VendorWithFoods, 0, len(vendors))
	for _, v := range vendors {
		items := byVendor[v.ID]
		if items == nil {
			items = []models.Food{}
		}
		out = append(out, models.VendorWithFoods{Vendor: v, Food_items: items})
	}
	return out, nil
}
