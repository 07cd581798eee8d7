package database

import (
	"context"
	"time"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ services.TransactionStore = (*TransactionStore)(nil)

type TransactionStore struct {
	collection *mongo.Collection
}

func (s *TransactionStore) Create(ctx context.Context, txn *models.Transaction) error {
	return insertOne(ctx, s.collection, txn)
}

func (s *TransactionStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var txn models.Transaction
	if err := findOne(ctx, s.collection, bson.M{"_id": id}, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *TransactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	return findAll[models.Transaction](ctx, s.collection, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// Transition is a compare-and-set on status: the update only matches while
// the stored status is still from.
func (s *TransactionStore) Transition(ctx context.Context, id primitive.ObjectID, from, to models.TransactionStatus, link models.TransactionLink) error {
	return guardedUpdate(ctx, s.collection, id, bson.M{"status": from}, bson.M{"$set": bson.M{
		"status":     to,
		"vendor_id":  link.Vendor_id,
		"order_id":   link.Order_id,
		"updated_at": time.Now(),
	}})
}
