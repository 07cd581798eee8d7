package database

import (
	"context"
	"errors"
	"fmt"

	"food-marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findOne(ctx context.Context, collection *mongo.Collection, filter interface{}, out interface{}) error {
	err := collection.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", collection.Name(), models.ErrNotFound)
	}
	return err
}

func findAll[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func insertOne(ctx context.Context, collection *mongo.Collection, doc interface{}) error {
	_, err := collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", collection.Name(), models.ErrConflict)
	}
	return err
}

// updateByID applies update to the document and reports ErrNotFound when no
// document has that id.
func updateByID(ctx context.Context, collection *mongo.Collection, id primitive.ObjectID, update interface{}) error {
	result, err := collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", collection.Name(), id.Hex(), models.ErrNotFound)
	}
	return nil
}

// guardedUpdate runs an update whose filter carries a precondition. A miss is
// ErrConflict when the document exists and ErrNotFound otherwise.
func guardedUpdate(ctx context.Context, collection *mongo.Collection, id primitive.ObjectID, filter bson.M, update interface{}) error {
	filter["_id"] = id
	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}
	count, err := collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s %s: %w", collection.Name(), id.Hex(), models.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", collection.Name(), id.Hex(), models.ErrConflict)
}

func profileSet(update models.ProfileUpdate) bson.D {
	var set bson.D
	if update.First_name != "" {
		set = append(set, bson.E{Key: "first_name", Value: update.First_name})
	}
	if update.Last_name != "" {
		set = append(set, bson.E{Key: "last_name", Value: update.Last_name})
	}
	if update.Address != "" {
		set = append(set, bson.E{Key: "address", Value: update.Address})
	}
	return set
}
