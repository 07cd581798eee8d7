package database

import (
	"context"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ services.FoodStore = (*FoodStore)(nil)

type FoodStore struct {
	collection *mongo.Collection
}

func (s *FoodStore) Create(ctx context.Context, food *models.Food) error {
	return insertOne(ctx, s.collection, food)
}

func (s *FoodStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error) {
	var food models.Food
	if err := findOne(ctx, s.collection, bson.M{"_id": id}, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Food, error) {
	if len(ids) == 0 {
		return []models.Food{}, nil
	}
	return findAll[models.Food](ctx, s.collection, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *FoodStore) FindByVendors(ctx context.Context, vendorIDs []primitive.ObjectID) ([]models.Food, error) {
	if len(vendorIDs) == 0 {
		return []models.Food{}, nil
	}
	return findAll[models.Food](ctx, s.collection, bson.M{"vendor_id": bson.M{"$in": vendorIDs}})
}
