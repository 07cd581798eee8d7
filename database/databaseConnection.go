package database

import (
	"context"
	"fmt"
	"time"

	"food-marketplace/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CustomerCollection    = "customers"
	VendorCollection      = "vendors"
	FoodCollection        = "foods"
	OfferCollection       = "offers"
	TransactionCollection = "transactions"
	OrderCollection       = "orders"
	CourierCollection     = "delivery_users"
)

// DBinstance connects to mongo and pings the primary before returning.
func DBinstance(ctx context.Context, url string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// OpenCollection returns a handle on collectionName in dbName.
func OpenCollection(client *mongo.Client, dbName, collectionName string) *mongo.Collection {
	return client.Database(dbName).Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the stores rely on for conflict
// detection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		CustomerCollection: {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		VendorCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "pin_code", Value: 1}, {Key: "rating", Value: -1}}},
		},
		CourierCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "pin_code", Value: 1}, {Key: "is_available", Value: 1}}},
		},
		FoodCollection:  {{Keys: bson.D{{Key: "vendor_id", Value: 1}}}},
		OrderCollection: {{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: unique}},
		OfferCollection: {{Keys: bson.D{{Key: "pin_code", Value: 1}, {Key: "is_active", Value: 1}}}},
	}
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// NewStores builds every mongo backed store over dbName.
func NewStores(client *mongo.Client, dbName string) services.Stores {
	return services.Stores{
		Customers:    &CustomerStore{collection: OpenCollection(client, dbName, CustomerCollection)},
		Vendors:      &VendorStore{collection: OpenCollection(client, dbName, VendorCollection)},
		Foods:        &FoodStore{collection: OpenCollection(client, dbName, FoodCollection)},
		Offers:       &OfferStore{collection: OpenCollection(client, dbName, OfferCollection)},
		Transactions: &TransactionStore{collection: OpenCollection(client, dbName, TransactionCollection)},
		Orders:       &OrderStore{collection: OpenCollection(client, dbName, OrderCollection)},
		Couriers:     &CourierStore{collection: OpenCollection(client, dbName, CourierCollection)},
	}
}
