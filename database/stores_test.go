package database

import (
	"context"
	"testing"

	"food-marketplace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func matched(n int32) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
}

// counted answers the aggregate CountDocuments sends.
func counted(mt *mtest.T, n int64) bson.D {
	ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
	if n == 0 {
		return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
	}
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: n}})
}

func duplicateKey() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"})
}

// sentUpdate pops the next command and returns the filter and update of its
// first statement.
func sentUpdate(mt *mtest.T) (bson.Raw, bson.Raw) {
	mt.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt)
	require.Equal(mt, "update", evt.CommandName)
	return evt.Command.Lookup("updates", "0", "q").Document(), evt.Command.Lookup("updates", "0", "u").Document()
}

func TestTransactionTransition(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	link := models.TransactionLink{Vendor_id: "v1", Order_id: "12345"}

	mt.Run("matches only the expected status", func(mt *mtest.T) {
		store := &TransactionStore{collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(matched(1))

		require.NoError(mt, store.Transition(ctx, id, models.TransactionOpen, models.TransactionConfirmed, link))

		filter, update := sentUpdate(mt)
		assert.Equal(mt, id, filter.Lookup("_id").ObjectID())
		assert.Equal(mt, "OPEN", filter.Lookup("status").StringValue())
		assert.Equal(mt, "CONFIRMED", update.Lookup("$set", "status").StringValue())
		assert.Equal(mt, "12345", update.Lookup("$set", "order_id").StringValue())
		assert.Equal(mt, "v1", update.Lookup("$set", "vendor_id").StringValue())
	})

	mt.Run("status moved on is a conflict", func(mt *mtest.T) {
		store := &TransactionStore{collection: mt.Coll}
		mt.AddMockResponses(matched(0), counted(mt, 1))

		err := store.Transition(ctx, primitive.NewObjectID(), models.TransactionOpen, models.TransactionConfirmed, link)
		assert.ErrorIs(mt, err, models.ErrConflict)

		sentUpdate(mt)
		assert.Equal(mt, "aggregate", mt.GetStartedEvent().CommandName)
	})

	mt.Run("missing transaction is not found", func(mt *mtest.T) {
		store := &TransactionStore{collection: mt.Coll}
		mt.AddMockResponses(matched(0), counted(mt, 0))

		err := store.Transition(ctx, primitive.NewObjectID(), models.TransactionConfirmed, models.TransactionOpen, link)
		assert.ErrorIs(mt, err, models.ErrNotFound)
		assert.NotErrorIs(mt, err, models.ErrConflict)
	})
}

func TestOrderStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("duplicate order code", func(mt *mtest.T) {
		store := &OrderStore{collection: mt.Coll}
		mt.AddMockResponses(duplicateKey())

		err := store.Create(ctx, &models.Order{ID: primitive.NewObjectID(), Order_id: "11111"})
		assert.ErrorIs(mt, err, models.ErrDuplicateOrderID)
		assert.ErrorIs(mt, err, models.ErrConflict)
	})

	mt.Run("delivery is assigned once", func(mt *mtest.T) {
		store := &OrderStore{collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(matched(1), matched(0), counted(mt, 1))

		require.NoError(mt, store.AssignDelivery(ctx, id, "courier-1"))
		filter, update := sentUpdate(mt)
		assert.Equal(mt, "", filter.Lookup("delivery_id").StringValue())
		assert.Equal(mt, "courier-1", update.Lookup("$set", "delivery_id").StringValue())

		err := store.AssignDelivery(ctx, id, "courier-2")
		assert.ErrorIs(mt, err, models.ErrConflict)
	})

	mt.Run("status update on missing order", func(mt *mtest.T) {
		store := &OrderStore{collection: mt.Coll}
		mt.AddMockResponses(matched(0))

		err := store.UpdateStatus(ctx, primitive.NewObjectID(), models.OrderAccepted, "", 0)
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})
}

func TestCustomerStoreCart(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("existing entry is updated in place", func(mt *mtest.T) {
		store := &CustomerStore{collection: mt.Coll}
		id, food := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(matched(1))

		require.NoError(mt, store.PutCartItem(ctx, id, food, 3))

		filter, update := sentUpdate(mt)
		assert.Equal(mt, food, filter.Lookup("cart.food").ObjectID())
		assert.Equal(mt, int32(3), update.Lookup("$set", "cart.$.unit").Int32())
		assert.Nil(mt, mt.GetStartedEvent(), "no push after a positional hit")
	})

	mt.Run("new entry is pushed when absent", func(mt *mtest.T) {
		store := &CustomerStore{collection: mt.Coll}
		id, food := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(matched(0), matched(1))

		require.NoError(mt, store.PutCartItem(ctx, id, food, 2))

		sentUpdate(mt)
		filter, update := sentUpdate(mt)
		assert.Equal(mt, food, filter.Lookup("cart.food", "$ne").ObjectID())
		assert.Equal(mt, food, update.Lookup("$push", "cart", "food").ObjectID())
		assert.Equal(mt, int32(2), update.Lookup("$push", "cart", "unit").Int32())
	})

	mt.Run("unknown customer", func(mt *mtest.T) {
		store := &CustomerStore{collection: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(matched(0), matched(0), matched(0), matched(0), mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		err := store.PutCartItem(ctx, primitive.NewObjectID(), primitive.NewObjectID(), 1)
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("attach clears the cart and links the order", func(mt *mtest.T) {
		store := &CustomerStore{collection: mt.Coll}
		order := primitive.NewObjectID()
		mt.AddMockResponses(matched(1))

		require.NoError(mt, store.AttachOrder(ctx, primitive.NewObjectID(), order))

		_, update := sentUpdate(mt)
		assert.Equal(mt, order, update.Lookup("$push", "orders").ObjectID())
		cart, ok := update.Lookup("$set", "cart").ArrayOK()
		require.True(mt, ok)
		values, err := cart.Values()
		require.NoError(mt, err)
		assert.Empty(mt, values)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		store := &CustomerStore{collection: mt.Coll}
		mt.AddMockResponses(duplicateKey())

		err := store.Create(ctx, &models.Customer{ID: primitive.NewObjectID(), Email: "jane@example.com"})
		assert.ErrorIs(mt, err, models.ErrConflict)
	})

	mt.Run("find by id miss", func(mt *mtest.T) {
		store := &CustomerStore{collection: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})
}

func TestNewStoresOpensEachCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("collections", func(mt *mtest.T) {
		stores := NewStores(mt.Client, "marketplace")

		customers := stores.Customers.(*CustomerStore).collection
		assert.Equal(mt, "marketplace", customers.Database().Name())
		assert.Equal(mt, CustomerCollection, customers.Name())
		assert.Equal(mt, OrderCollection, stores.Orders.(*OrderStore).collection.Name())
		assert.Equal(mt, TransactionCollection, stores.Transactions.(*TransactionStore).collection.Name())
		assert.Equal(mt, CourierCollection, stores.Couriers.(*CourierStore).collection.Name())
	})
}
