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

var (
	_ services.TransactionStore = (*TransactionStore)(nil)
	_ services.OrderStore       = (*OrderStore)(nil)
)

type TransactionStore struct {
	t *table[models.Transaction]
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{t: newTable("transactions", func(txn *models.Transaction) *models.Transaction {
		out := *txn
		return &out
	})}
}

func (s *TransactionStore) Create(_ context.Context, txn *models.Transaction) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	return s.t.insertLocked(txn.ID, txn)
}

func (s *TransactionStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	return s.t.get(id)
}

func (s *TransactionStore) List(_ context.Context) ([]models.Transaction, error) {
	txns := s.t.filter(nil)
	sort.SliceStable(txns, func(i, j int) bool { return txns[i].Created_at.After(txns[j].Created_at) })
	return txns, nil
}

func (s *TransactionStore) Transition(_ context.Context, id primitive.ObjectID, from, to models.TransactionStatus, link models.TransactionLink) error {
	return s.t.update(id, func(txn *models.Transaction) error {
		if txn.Status != from {
			return fmt.Errorf("transaction %s is %s: %w", id.Hex(), txn.Status, models.ErrConflict)
		}
		txn.Status = to
		txn.Vendor_id = link.Vendor_id
		txn.Order_id = link.Order_id
		txn.Updated_at = time.Now()
		return nil
	})
}

type OrderStore struct {
	t *table[models.Order]
}

func NewOrderStore() *OrderStore {
	return &OrderStore{t: newTable("orders", func(o *models.Order) *models.Order {
		out := *o
		out.Items = append([]models.OrderItem{}, o.Items...)
		return &out
	})}
}

func (s *OrderStore) Create(_ context.Context, order *models.Order) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	for _, row := range s.t.rows {
		if row.Order_id == order.Order_id {
			return fmt.Errorf("order %s: %w", order.Order_id, models.ErrDuplicateOrderID)
		}
	}
	return s.t.insertLocked(order.ID, order)
}

func (s *OrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.t.get(id)
}

func (s *OrderStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Order, error) {
	want := idSet(ids)
	return newestFirst(s.t.filter(func(o *models.Order) bool { return want[o.ID] })), nil
}

func (s *OrderStore) FindByVendor(_ context.Context, vendorID primitive.ObjectID) ([]models.Order, error) {
	return newestFirst(s.t.filter(func(o *models.Order) bool { return o.Vendor_id == vendorID })), nil
}

func (s *OrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status, remarks string, readyTime int) error {
	return s.t.update(id, func(o *models.Order) error {
		o.Order_status = status
		if remarks != "" {
			o.Remarks = remarks
		}
		if readyTime > 0 {
			o.Ready_time = readyTime
		}
		o.Updated_at = time.Now()
		return nil
	})
}

func (s *OrderStore) AssignDelivery(_ context.Context, id primitive.ObjectID, deliveryID string) error {
	return s.t.update(id, func(o *models.Order) error {
		if o.Delivery_id != "" {
			return fmt.Errorf("order %s already assigned: %w", id.Hex(), models.ErrConflict)
		}
		o.Delivery_id = deliveryID
		o.Updated_at = time.Now()
		return nil
	})
}

func newestFirst(orders []models.Order) []models.Order {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Order_date.After(orders[j].Order_date) })
	return orders
}
