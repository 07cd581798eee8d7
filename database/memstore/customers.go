package memstore

import (
	"context"
	"fmt"
	"time"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ services.CustomerStore = (*CustomerStore)(nil)

type CustomerStore struct {
	t *table[models.Customer]
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{t: newTable("customers", cloneCustomer)}
}

func cloneCustomer(c *models.Customer) *models.Customer {
	out := *c
	out.Cart = append([]models.CartItem{}, c.Cart...)
	out.Orders = append([]primitive.ObjectID{}, c.Orders...)
	return &out
}

func (s *CustomerStore) Create(_ context.Context, customer *models.Customer) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	for _, row := range s.t.rows {
		if row.Email == customer.Email {
			return fmt.Errorf("customers %s: %w", customer.Email, models.ErrConflict)
		}
	}
	return s.t.insertLocked(customer.ID, customer)
}

func (s *CustomerStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Customer, error) {
	return s.t.get(id)
}

func (s *CustomerStore) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	return s.t.find(func(c *models.Customer) bool { return c.Email == email })
}

func (s *CustomerStore) UpdateProfile(_ context.Context, id primitive.ObjectID, update models.ProfileUpdate) error {
	return s.t.update(id, func(c *models.Customer) error {
		applyProfile(&c.First_name, &c.Last_name, &c.Address, update)
		c.Updated_at = time.Now()
		return nil
	})
}

func (s *CustomerStore) SetOtp(_ context.Context, id primitive.ObjectID, otp int, expiry time.Time) error {
	return s.t.update(id, func(c *models.Customer) error {
		c.Otp = otp
		c.Otp_expiry = expiry
		c.Updated_at = time.Now()
		return nil
	})
}

func (s *CustomerStore) MarkVerified(_ context.Context, id primitive.ObjectID) error {
	return s.t.update(id, func(c *models.Customer) error {
		c.Verified = true
		c.Otp = 0
		c.Updated_at = time.Now()
		return nil
	})
}

func (s *CustomerStore) PutCartItem(_ context.Context, id, foodID primitive.ObjectID, unit int) error {
	return s.t.update(id, func(c *models.Customer) error {
		for i := range c.Cart {
			if c.Cart[i].Food == foodID {
				c.Cart[i].Unit = unit
				return nil
			}
		}
		c.Cart = append(c.Cart, models.CartItem{Food: foodID, Unit: unit})
		c.Updated_at = time.Now()
		return nil
	})
}

func (s *CustomerStore) RemoveCartItem(_ context.Context, id, foodID primitive.ObjectID) error {
	return s.t.update(id, func(c *models.Customer) error {
		kept := c.Cart[:0]
		for _, item := range c.Cart {
			if item.Food != foodID {
				kept = append(kept, item)
			}
		}
		c.Cart = kept
		c.Updated_at = time.Now()
		return nil
	})
}

func (s *CustomerStore) ClearCart(_ context.Context, id primitive.ObjectID) error {
	return s.t.update(id, func(c *models.Customer) error {
		c.Cart = []models.CartItem{}
		c.Updated_at = time.Now()
		return nil
	})
}

func (s *CustomerStore) AttachOrder(_ context.Context, id, orderID primitive.ObjectID) error {
	return s.t.update(id, func(c *models.Customer) error {
		c.Cart = []models.CartItem{}
		c.Orders = append(c.Orders, orderID)
		c.Updated_at = time.Now()
		return nil
	})
}
