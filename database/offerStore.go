package database

import (
	"context"

	"food-marketplace/models"
	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ services.OfferStore = (*OfferStore)(nil)

type OfferStore struct {
	collection *mongo.Collection
}

func (s *OfferStore) Create(ctx context.Context, offer *models.Offer) error {
	return insertOne(ctx, s.collection, offer)
}

func (s *OfferStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	var offer models.Offer
	if err := findOne(ctx, s.collection, bson.M{"_id": id}, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (s *OfferStore) Update(ctx context.Context, offer *models.Offer) error {
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": offer.ID}, offer)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *OfferStore) FindForVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Offer, error) {
	return findAll[models.Offer](ctx, s.collection, bson.M{"$or": bson.A{
		bson.M{"vendors": vendorID},
		bson.M{"offer_type": models.OfferTypeGeneric},
	}})
}

func (s *OfferStore) FindActiveByPinCode(ctx context.Context, pinCode string) ([]models.Offer, error) {
	return findAll[models.Offer](ctx, s.collection, bson.M{"pin_code": pinCode, "is_active": true})
}
