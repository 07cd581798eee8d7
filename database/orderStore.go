package database

import (
	"context"
	"fmt"
	"time"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ services.OrderStore = (*OrderStore)(nil)

type OrderStore struct {
	collection *mongo.Collection
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	_, err := s.collection.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("order %s: %w", order.Order_id, models.ErrDuplicateOrderID)
	}
	return err
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := findOne(ctx, s.collection, bson.M{"_id": id}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Order, error) {
	if len(ids) == 0 {
		return []models.Order{}, nil
	}
	return findAll[models.Order](ctx, s.collection, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}}))
}

func (s *OrderStore) FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.collection, bson.M{"vendor_id": vendorID},
		options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}}))
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, remarks string, readyTime int) error {
	set := bson.D{{Key: "order_status", Value: status}}
	if remarks != "" {
		set = append(set, bson.E{Key: "remarks", Value: remarks})
	}
	if readyTime > 0 {
		set = append(set, bson.E{Key: "ready_time", Value: readyTime})
	}
	set = append(set, bson.E{Key: "updated_at", Value: time.Now()})
	return updateByID(ctx, s.collection, id, bson.D{{Key: "$set", Value: set}})
}

func (s *OrderStore) AssignDelivery(ctx context.Context, id primitive.ObjectID, deliveryID string) error {
	return guardedUpdate(ctx, s.collection, id, bson.M{"delivery_id": ""}, bson.M{"$set": bson.M{
		"delivery_id": deliveryID,
		"updated_at":  time.Now(),
	}})
}
