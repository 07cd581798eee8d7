package database

import (
	"context"
	"time"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ services.CustomerStore = (*CustomerStore)(nil)

type CustomerStore struct {
	collection *mongo.Collection
}

func (s *CustomerStore) Create(ctx context.Context, customer *models.Customer) error {
	if customer.Cart == nil {
		customer.Cart = []models.CartItem{}
	}
	if customer.Orders == nil {
		customer.Orders = []primitive.ObjectID{}
	}
	return insertOne(ctx, s.collection, customer)
}

func (s *CustomerStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	if err := findOne(ctx, s.collection, bson.M{"_id": id}, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerStore) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := findOne(ctx, s.collection, bson.M{"email": email}, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error {
	set := append(profileSet(update), bson.E{Key: "updated_at", Value: time.Now()})
	return updateByID(ctx, s.collection, id, bson.D{{Key: "$set", Value: set}})
}

func (s *CustomerStore) SetOtp(ctx context.Context, id primitive.ObjectID, otp int, expiry time.Time) error {
	return updateByID(ctx, s.collection, id, bson.M{"$set": bson.M{
		"otp":        otp,
		"otp_expiry": expiry,
		"updated_at": time.Now(),
	}})
}

func (s *CustomerStore) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	return updateByID(ctx, s.collection, id, bson.M{"$set": bson.M{
		"verified":   true,
		"otp":        0,
		"updated_at": time.Now(),
	}})
}

func (s *CustomerStore) PutCartItem(ctx context.Context, id, foodID primitive.ObjectID, unit int) error {
	// Two attempts cover a concurrent push of the same food between the
	// positional update and the guarded push.
	for attempt := 0; attempt < 2; attempt++ {
		result, err := s.collection.UpdateOne(ctx,
			bson.M{"_id": id, "cart.food": foodID},
			bson.M{"$set": bson.M{"cart.$.unit": unit, "updated_at": time.Now()}},
		)
		if err != nil {
			return err
		}
		if result.MatchedCount > 0 {
			return nil
		}
		result, err = s.collection.UpdateOne(ctx,
			bson.M{"_id": id, "cart.food": bson.M{"$ne": foodID}},
			bson.M{
				"$push": bson.M{"cart": models.CartItem{Food: foodID, Unit: unit}},
				"$set":  bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			return err
		}
		if result.MatchedCount > 0 {
			return nil
		}
	}
	_, err := s.FindByID(ctx, id)
	return err
}

func (s *CustomerStore) RemoveCartItem(ctx context.Context, id, foodID primitive.ObjectID) error {
	return updateByID(ctx, s.collection, id, bson.M{
		"$pull": bson.M{"cart": bson.M{"food": foodID}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

func (s *CustomerStore) ClearCart(ctx context.Context, id primitive.ObjectID) error {
	return updateByID(ctx, s.collection, id, bson.M{"$set": bson.M{
		"cart":       []models.CartItem{},
		"updated_at": time.Now(),
	}})
}

func (s *CustomerStore) AttachOrder(ctx context.Context, id, orderID primitive.ObjectID) error {
	return updateByID(ctx, s.collection, id, bson.M{
		"$set":  bson.M{"cart": []models.CartItem{}, "updated_at": time.Now()},
		"$push": bson.M{"orders": orderID},
	})
}
