package memstore

import (
	"context"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ services.FoodStore  = (*FoodStore)(nil)
	_ services.OfferStore = (*OfferStore)(nil)
)

type FoodStore struct {
	t *table[models.Food]
}

func NewFoodStore() *FoodStore {
	return &FoodStore{t: newTable("foods", func(f *models.Food) *models.Food {
		out := *f
		out.Images = append([]string{}, f.Images...)
		return &out
	})}
}

func (s *FoodStore) Create(_ context.Context, food *models.Food) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	return s.t.insertLocked(food.ID, food)
}

func (s *FoodStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Food, error) {
	return s.t.get(id)
}

func (s *FoodStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Food, error) {
	want := idSet(ids)
	return s.t.filter(func(f *models.Food) bool { return want[f.ID] }), nil
}

func (s *FoodStore) FindByVendors(_ context.Context, vendorIDs []primitive.ObjectID) ([]models.Food, error) {
	want := idSet(vendorIDs)
	return s.t.filter(func(f *models.Food) bool { return want[f.Vendor_id] }), nil
}

type OfferStore struct {
	t *table[models.Offer]
}

func NewOfferStore() *OfferStore {
	return &OfferStore{t: newTable("offers", func(o *models.Offer) *models.Offer {
		out := *o
		out.Vendors = append([]primitive.ObjectID{}, o.Vendors...)
		out.Bank = append([]string{}, o.Bank...)
		out.Bins = append([]int{}, o.Bins...)
		return &out
	})}
}

func (s *OfferStore) Create(_ context.Context, offer *models.Offer) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	return s.t.insertLocked(offer.ID, offer)
}

func (s *OfferStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Offer, error) {
	return s.t.get(id)
}

func (s *OfferStore) Update(_ context.Context, offer *models.Offer) error {
	replacement := s.t.clone(offer)
	return s.t.update(offer.ID, func(o *models.Offer) error {
		*o = *replacement
		return nil
	})
}

func (s *OfferStore) FindForVendor(_ context.Context, vendorID primitive.ObjectID) ([]models.Offer, error) {
	return s.t.filter(func(o *models.Offer) bool {
		if o.Offer_type == models.OfferTypeGeneric {
			return true
		}
		for _, v := range o.Vendors {
			if v == vendorID {
				return true
			}
		}
		return false
	}), nil
}

func (s *OfferStore) FindActiveByPinCode(_ context.Context, pinCode string) ([]models.Offer, error) {
	return s.t.filter(func(o *models.Offer) bool { return o.Pin_code == pinCode && o.Is_active }), nil
}
