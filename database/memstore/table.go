// Package memstore keeps every store in process memory. It backs the
// "memory" database driver and the service and controller tests.
package memstore

import (
	"fmt"
	"sync"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// New returns an empty store set.
func New() services.Stores {
	return services.Stores{
		Customers:    NewCustomerStore(),
		Vendors:      NewVendorStore(),
		Foods:        NewFoodStore(),
		Offers:       NewOfferStore(),
		Transactions: NewTransactionStore(),
		Orders:       NewOrderStore(),
		Couriers:     NewCourierStore(),
	}
}

// table is an insertion ordered map of documents. Callers always get copies.
type table[T any] struct {
	mu    sync.RWMutex
	name  string
	rows  map[primitive.ObjectID]*T
	order []primitive.ObjectID
	clone func(*T) *T
}

func newTable[T any](name string, clone func(*T) *T) *table[T] {
	return &table[T]{name: name, rows: make(map[primitive.ObjectID]*T), clone: clone}
}

func (t *table[T]) insertLocked(id primitive.ObjectID, row *T) error {
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%s %s: %w", t.name, id.Hex(), models.ErrConflict)
	}
	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) get(id primitive.ObjectID) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, t.notFound(id)
	}
	return t.clone(row), nil
}

func (t *table[T]) find(match func(*T) bool) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return t.clone(row), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", t.name, models.ErrNotFound)
}

func (t *table[T]) filter(match func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, id := range t.order {
		if row := t.rows[id]; match == nil || match(row) {
			out = append(out, *t.clone(row))
		}
	}
	return out
}

// update runs fn on the stored row under the write lock.
func (t *table[T]) update(id primitive.ObjectID, fn func(*T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return t.notFound(id)
	}
	return fn(row)
}

func (t *table[T]) notFound(id primitive.ObjectID) error {
	return fmt.Errorf("%s %s: %w", t.name, id.Hex(), models.ErrNotFound)
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]bool {
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func applyProfile(first, last, address *string, update models.ProfileUpdate) {
	if update.First_name != "" {
		*first = update.First_name
	}
	if update.Last_name != "" {
		*last = update.Last_name
	}
	if update.Address != "" {
		*address = update.Address
	}
}
