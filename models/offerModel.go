package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OfferTypeVendor  = "VENDOR"
	OfferTypeGeneric = "GENERIC"
)

type Offer struct {
	ID             primitive.ObjectID   `bson:"_id" json:"_id"`
	Offer_type     string               `bson:"offer_type" json:"offer_type" validate:"required,eq=VENDOR|eq=GENERIC"`
	Vendors        []primitive.ObjectID `bson:"vendors" json:"vendors"`
	Title          string               `bson:"title" json:"title" validate:"required"`
	Description    string               `bson:"description" json:"description"`
	Min_value      float64              `bson:"min_value" json:"min_value" validate:"gte=0"`
	Offer_amount   float64              `bson:"offer_amount" json:"offer_amount" validate:"gt=0"`
	Start_validity *time.Time           `bson:"start_validity,omitempty" json:"start_validity,omitempty"`
	End_validity   *time.Time           `bson:"end_validity,omitempty" json:"end_validity,omitempty"`
	Promo_code     string               `bson:"promo_code" json:"promo_code" validate:"required"`
	Promo_type     string               `bson:"promo_type" json:"promo_type" validate:"required"`
	Bank           []string             `bson:"bank" json:"bank"`
	Bins           []int                `bson:"bins" json:"bins"`
	Pin_code       string               `bson:"pin_code" json:"pin_code" validate:"required"`
	Is_active      bool                 `bson:"is_active" json:"is_active"`
	Created_at     time.Time            `bson:"created_at" json:"created_at"`
	Updated_at     time.Time            `bson:"updated_at" json:"updated_at"`
}

// InWindow reports whether now falls inside the offer's validity window. A
// missing bound is open.
func (o *Offer) InWindow(now time.Time) bool {
	if o.Start_validity != nil && now.Before(*o.Start_validity) {
		return false
	}
	if o.End_validity != nil && now.After(*o.End_validity) {
		return false
	}
	return true
}

// Applicable reports whether the offer may discount an order of the given
// value at time now.
func (o *Offer) Applicable(amount float64, now time.Time) bool {
	return o.Is_active && o.InWindow(now) && amount >= o.Min_value
}
