package services

import (
	"context"
	"fmt"
	"time"

	"food-marketplace/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store lookups return models.ErrNotFound when nothing matches and
// models.ErrConflict when a uniqueness or status guard rejects a write.

type CustomerStore interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error
	SetOtp(ctx context.Context, id primitive.ObjectID, otp int, expiry time.Time) error
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
	// PutCartItem sets the unit of an existing entry or appends a new one.
	PutCartItem(ctx context.Context, id, foodID primitive.ObjectID, unit int) error
	RemoveCartItem(ctx context.Context, id, foodID primitive.ObjectID) error
	ClearCart(ctx context.Context, id primitive.ObjectID) error
	// AttachOrder empties the cart and appends orderID in one update.
	AttachOrder(ctx context.Context, id, orderID primitive.ObjectID) error
}

type VendorStore interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error)
	FindByEmail(ctx context.Context, email string) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
	// FindServiceable lists vendors serving pinCode, best rated first. A
	// limit of zero means no limit.
	FindServiceable(ctx context.Context, pinCode string, limit int64) ([]models.Vendor, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.VendorUpdate) error
	SetServiceAvailable(ctx context.Context, id primitive.ObjectID, available bool) error
	AddFood(ctx context.Context, id, foodID primitive.ObjectID) error
}

type FoodStore interface {
	Create(ctx context.Context, food *models.Food) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Food, error)
	FindByVendors(ctx context.Context, vendorIDs []primitive.ObjectID) ([]models.Food, error)
}

type OfferStore interface {
	Create(ctx context.Context, offer *models.Offer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	// FindForVendor lists the vendor's own offers plus generic offers.
	FindForVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Offer, error)
	FindActiveByPinCode(ctx context.Context, pinCode string) ([]models.Offer, error)
}

type TransactionStore interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	// Transition moves the transaction from one status to another and writes
	// link, but only while the stored status still equals from.
	Transition(ctx context.Context, id primitive.ObjectID, from, to models.TransactionStatus, link models.TransactionLink) error
}

type OrderStore interface {
	// Create returns models.ErrDuplicateOrderID when Order_id is taken.
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Order, error)
	FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status, remarks string, readyTime int) error
	// AssignDelivery sets Delivery_id only if the order has none yet.
	AssignDelivery(ctx context.Context, id primitive.ObjectID, deliveryID string) error
}

type CourierStore interface {
	Create(ctx context.Context, courier *models.DeliveryUser) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryUser, error)
	FindByEmail(ctx context.Context, email string) (*models.DeliveryUser, error)
	List(ctx context.Context) ([]models.DeliveryUser, error)
	// FindAvailable lists verified, available couriers in pinCode in
	// insertion order.
	FindAvailable(ctx context.Context, pinCode string) ([]models.DeliveryUser, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.CourierStatus) error
	SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error
}

// Publisher fans settlement and order events out to listeners.
type Publisher interface {
	Publish(ctx context.Context, n models.Notification) error
}

// OtpSender delivers a one time password to a phone number.
type OtpSender interface {
	SendOtp(ctx context.Context, phone string, otp int) error
}

// Throttle reports whether an action keyed by key may run now, reserving the
// window when it may.
type Throttle interface {
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}

// Stores bundles every backing store a service set needs.
type Stores struct {
	Customers    CustomerStore
	Vendors      VendorStore
	Foods        FoodStore
	Offers       OfferStore
	Transactions TransactionStore
	Orders       OrderStore
	Couriers     CourierStore
}

type Clock func() time.Time

func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", models.ErrValidation, hex)
	}
	return id, nil
}
