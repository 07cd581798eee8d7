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

var _ services.CourierStore = (*CourierStore)(nil)

type CourierStore struct {
	collection *mongo.Collection
}

func (s *CourierStore) Create(ctx context.Context, courier *models.DeliveryUser) error {
	return insertOne(ctx, s.collection, courier)
}

func (s *CourierStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryUser, error) {
	var courier models.DeliveryUser
	if err := findOne(ctx, s.collection, bson.M{"_id": id}, &courier); err != nil {
		return nil, err
	}
	return &courier, nil
}

func (s *CourierStore) FindByEmail(ctx context.Context, email string) (*models.DeliveryUser, error) {
	var courier models.DeliveryUser
	if err := findOne(ctx, s.collection, bson.M{"email": email}, &courier); err != nil {
		return nil, err
	}
	return &courier, nil
}

func (s *CourierStore) List(ctx context.Context) ([]models.DeliveryUser, error) {
	return findAll[models.DeliveryUser](ctx, s.collection, bson.M{})
}

func (s *CourierStore) FindAvailable(ctx context.Context, pinCode string) ([]models.DeliveryUser, error) {
	return findAll[models.DeliveryUser](ctx, s.collection,
		bson.M{"pin_code": pinCode, "verified": true, "is_available": true},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (s *CourierStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error {
	set := append(profileSet(update), bson.E{Key: "updated_at", Value: time.Now()})
	return updateByID(ctx, s.collection, id, bson.D{{Key: "$set", Value: set}})
}

func (s *CourierStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CourierStatus) error {
	set := bson.M{"is_available": status.Is_available, "updated_at": time.Now()}
	if status.Lat != nil {
		set["lat"] = *status.Lat
	}
	if status.Lng != nil {
		set["lng"] = *status.Lng
	}
	return updateByID(ctx, s.collection, id, bson.M{"$set": set})
}

func (s *CourierStore) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error {
	return updateByID(ctx, s.collection, id, bson.M{"$set": bson.M{
		"verified":   verified,
		"updated_at": time.Now(),
	}})
}
