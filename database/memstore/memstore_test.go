package memstore

import (
	"context"
	"testing"

	"food-marketplace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCustomerCartOperations(t *testing.T) {
	ctx := context.Background()
	s := NewCustomerStore()
	c := &models.Customer{ID: primitive.NewObjectID(), Email: "a@b.io"}
	require.NoError(t, s.Create(ctx, c))
	assert.ErrorIs(t, s.Create(ctx, &models.Customer{ID: primitive.NewObjectID(), Email: "a@b.io"}), models.ErrConflict)

	food := primitive.NewObjectID()
	require.NoError(t, s.PutCartItem(ctx, c.ID, food, 1))
	require.NoError(t, s.PutCartItem(ctx, c.ID, food, 3))
	got, err := s.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.CartItem{{Food: food, Unit: 3}}, got.Cart)

	got.Cart[0].Unit = 99
	again, err := s.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Cart[0].Unit, "callers receive copies")

	order := primitive.NewObjectID()
	require.NoError(t, s.AttachOrder(ctx, c.ID, order))
	got, err = s.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Cart)
	assert.Equal(t, []primitive.ObjectID{order}, got.Orders)

	assert.ErrorIs(t, s.ClearCart(ctx, primitive.NewObjectID()), models.ErrNotFound)
}

func TestTransactionTransitionIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()
	txn := &models.Transaction{ID: primitive.NewObjectID(), Status: models.TransactionOpen}
	require.NoError(t, s.Create(ctx, txn))

	link := models.TransactionLink{Vendor_id: "v", Order_id: "12345"}
	require.NoError(t, s.Transition(ctx, txn.ID, models.TransactionOpen, models.TransactionConfirmed, link))
	err := s.Transition(ctx, txn.ID, models.TransactionOpen, models.TransactionConfirmed, link)
	assert.ErrorIs(t, err, models.ErrConflict)

	got, err := s.FindByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionConfirmed, got.Status)
	assert.Equal(t, "12345", got.Order_id)

	err = s.Transition(ctx, primitive.NewObjectID(), models.TransactionOpen, models.TransactionConfirmed, link)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOrderCodeUniquenessAndSingleAssignment(t *testing.T) {
	ctx := context.Background()
	s := NewOrderStore()
	first := &models.Order{ID: primitive.NewObjectID(), Order_id: "12345"}
	require.NoError(t, s.Create(ctx, first))
	assert.ErrorIs(t, s.Create(ctx, &models.Order{ID: primitive.NewObjectID(), Order_id: "12345"}), models.ErrDuplicateOrderID)

	require.NoError(t, s.AssignDelivery(ctx, first.ID, "courier-1"))
	assert.ErrorIs(t, s.AssignDelivery(ctx, first.ID, "courier-2"), models.ErrConflict)
}

func TestFindServiceableOrdersByRating(t *testing.T) {
	ctx := context.Background()
	s := NewVendorStore()
	for i, rating := range []float64{3, 5, 4} {
		require.NoError(t, s.Create(ctx, &models.Vendor{
			ID:                primitive.NewObjectID(),
			Email:             string(rune('a'+i)) + "@v.io",
			Pin_code:          "400001",
			Service_available: true,
			Rating:            rating,
		}))
	}
	vendors, err := s.FindServiceable(ctx, "400001", 2)
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, 5.0, vendors[0].Rating)
	assert.Equal(t, 4.0, vendors[1].Rating)
}
