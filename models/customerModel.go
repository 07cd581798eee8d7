package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	Food primitive.ObjectID `bson:"food" json:"food"`
	Unit int                `bson:"unit" json:"unit"`
}

type Customer struct {
	ID         primitive.ObjectID   `bson:"_id" json:"_id"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Salt       string               `bson:"salt" json:"-"`
	First_name string               `bson:"first_name" json:"first_name"`
	Last_name  string               `bson:"last_name" json:"last_name"`
	Address    string               `bson:"address" json:"address"`
	Phone      string               `bson:"phone" json:"phone"`
	Verified   bool                 `bson:"verified" json:"verified"`
	Otp        int                  `bson:"otp" json:"-"`
	Otp_expiry time.Time            `bson:"otp_expiry" json:"-"`
	Lat        float64              `bson:"lat" json:"lat"`
	Lng        float64              `bson:"lng" json:"lng"`
	Cart       []CartItem           `bson:"cart" json:"cart"`
	Orders     []primitive.ObjectID `bson:"orders" json:"orders"`
	Created_at time.Time            `bson:"created_at" json:"created_at"`
	Updated_at time.Time            `bson:"updated_at" json:"updated_at"`
}

// ProfileUpdate carries the editable profile fields shared by customers and
// delivery users. Empty fields are left untouched.
type ProfileUpdate struct {
	First_name string `json:"first_name"`
	Last_name  string `json:"last_name"`
	Address    string `json:"address"`
}
