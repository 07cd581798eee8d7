package memstore

import (
	"context"
	"fmt"
	"time"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ services.CourierStore = (*CourierStore)(nil)

type CourierStore struct {
	t *table[models.DeliveryUser]
}

func NewCourierStore() *CourierStore {
	return &CourierStore{t: newTable("delivery_users", func(d *models.DeliveryUser) *models.DeliveryUser {
		out := *d
		return &out
	})}
}

func (s *CourierStore) Create(_ context.Context, courier *models.DeliveryUser) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	for _, row := range s.t.rows {
		if row.Email == courier.Email {
			return fmt.Errorf("delivery_users %s: %w", courier.Email, models.ErrConflict)
		}
	}
	return s.t.insertLocked(courier.ID, courier)
}

func (s *CourierStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.DeliveryUser, error) {
	return s.t.get(id)
}

func (s *CourierStore) FindByEmail(_ context.Context, email string) (*models.DeliveryUser, error) {
	return s.t.find(func(d *models.DeliveryUser) bool { return d.Email == email })
}

func (s *CourierStore) List(_ context.Context) ([]models.DeliveryUser, error) {
	return s.t.filter(nil), nil
}

func (s *CourierStore) FindAvailable(_ context.Context, pinCode string) ([]models.DeliveryUser, error) {
	return s.t.filter(func(d *models.DeliveryUser) bool {
		return d.Pin_code == pinCode && d.Verified && d.Is_available
	}), nil
}

func (s *CourierStore) UpdateProfile(_ context.Context, id primitive.ObjectID, update models.ProfileUpdate) error {
	return s.t.update(id, func(d *models.DeliveryUser) error {
		applyProfile(&d.First_name, &d.Last_name, &d.Address, update)
		d.Updated_at = time.Now()
		return nil
	})
}

func (s *CourierStore) SetStatus(_ context.Context, id primitive.ObjectID, status models.CourierStatus) error {
	return s.t.update(id, func(d *models.DeliveryUser) error {
		d.Is_available = status.Is_available
		if status.Lat != nil {
			d.Lat = *status.Lat
		}
		if status.Lng != nil {
			d.Lng = *status.Lng
		}
		d.Updated_at = time.Now()
		return nil
	})
}

func (s *CourierStore) SetVerified(_ context.Context, id primitive.ObjectID, verified bool) error {
	return s.t.update(id, func(d *models.DeliveryUser) error {
		d.Verified = verified
		d.Updated_at = time.Now()
		return nil
	})
}
