package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ services.VendorStore = (*VendorStore)(nil)

type VendorStore struct {
	t *table[models.Vendor]
}

func NewVendorStore() *VendorStore {
	return &VendorStore{t: newTable("vendors", cloneVendor)}
}

func cloneVendor(v *models.Vendor) *models.Vendor {
	out := *v
	out.Food_type = append([]string{}, v.Food_type...)
	out.Cover_images = append([]string{}, v.Cover_images...)
	out.Foods = append([]primitive.ObjectID{}, v.Foods...)
	return &out
}

func (s *VendorStore) Create(_ context.Context, vendor *models.Vendor) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	for _, row := range s.t.rows {
		if row.Email == vendor.Email {
			return fmt.Errorf("vendors %s: %w", vendor.Email, models.ErrConflict)
		}
	}
	return s.t.insertLocked(vendor.ID, vendor)
}

func (s *VendorStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	return s.t.get(id)
}

func (s *VendorStore) FindByEmail(_ context.Context, email string) (*models.Vendor, error) {
	return s.t.find(func(v *models.Vendor) bool { return v.Email == email })
}

func (s *VendorStore) List(_ context.Context) ([]models.Vendor, error) {
	return s.t.filter(nil), nil
}

func (s *VendorStore) FindServiceable(_ context.Context, pinCode string, limit int64) ([]models.Vendor, error) {
	vendors := s.t.filter(func(v *models.Vendor) bool {
		return v.Pin_code == pinCode && v.Service_available
	})
	sort.SliceStable(vendors, func(i, j int) bool { return vendors[i].Rating > vendors[j].Rating })
	if limit > 0 && int64(len(vendors)) > limit {
		vendors = vendors[:limit]
	}
	return vendors, nil
}

func (s *VendorStore) UpdateProfile(_ context.Context, id primitive.ObjectID, update models.VendorUpdate) error {
	return s.t.update(id, func(v *models.Vendor) error {
		if update.Name != "" {
			v.Name = update.Name
		}
		if update.Address != "" {
			v.Address = update.Address
		}
		if update.Phone != "" {
			v.Phone = update.Phone
		}
		if len(update.Food_type) > 0 {
			v.Food_type = append([]string{}, update.Food_type...)
		}
		v.Updated_at = time.Now()
		return nil
	})
}

func (s *VendorStore) SetServiceAvailable(_ context.Context, id primitive.ObjectID, available bool) error {
	return s.t.update(id, func(v *models.Vendor) error {
		v.Service_available = available
		v.Updated_at = time.Now()
		return nil
	})
}

func (s *VendorStore) AddFood(_ context.Context, id, foodID primitive.ObjectID) error {
	return s.t.update(id, func(v *models.Vendor) error {
		v.Foods = append(v.Foods, foodID)
		v.Updated_at = time.Now()
		return nil
	})
}
