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

var _ services.VendorStore = (*VendorStore)(nil)

type VendorStore struct {
	collection *mongo.Collection
}

func (s *VendorStore) Create(ctx context.Context, vendor *models.Vendor) error {
	if vendor.Foods == nil {
		vendor.Foods = []primitive.ObjectID{}
	}
	return insertOne(ctx, s.collection, vendor)
}

func (s *VendorStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := findOne(ctx, s.collection, bson.M{"_id": id}, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *VendorStore) FindByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := findOne(ctx, s.collection, bson.M{"email": email}, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *VendorStore) List(ctx context.Context) ([]models.Vendor, error) {
	return findAll[models.Vendor](ctx, s.collection, bson.M{})
}

func (s *VendorStore) FindServiceable(ctx context.Context, pinCode string, limit int64) ([]models.Vendor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[models.Vendor](ctx, s.collection, bson.M{"pin_code": pinCode, "service_available": true}, opts)
}

func (s *VendorStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.VendorUpdate) error {
	var set bson.D
	if update.Name != "" {
		set = append(set, bson.E{Key: "name", Value: update.Name})
	}
	if update.Address != "" {
		set = append(set, bson.E{Key: "address", Value: update.Address})
	}
	if update.Phone != "" {
		set = append(set, bson.E{Key: "phone", Value: update.Phone})
	}
	if len(update.Food_type) > 0 {
		set = append(set, bson.E{Key: "food_type", Value: update.Food_type})
	}
	set = append(set, bson.E{Key: "updated_at", Value: time.Now()})
	return updateByID(ctx, s.collection, id, bson.D{{Key: "$set", Value: set}})
}

func (s *VendorStore) SetServiceAvailable(ctx context.Context, id primitive.ObjectID, available bool) error {
	return updateByID(ctx, s.collection, id, bson.M{"$set": bson.M{
		"service_available": available,
		"updated_at":        time.Now(),
	}})
}

func (s *VendorStore) AddFood(ctx context.Context, id, foodID primitive.ObjectID) error {
	return updateByID(ctx, s.collection, id, bson.M{
		"$push": bson.M{"foods": foodID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}
