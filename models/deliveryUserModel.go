package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DeliveryUser struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Salt         string             `bson:"salt" json:"-"`
	First_name   string             `bson:"first_name" json:"first_name"`
	Last_name    string             `bson:"last_name" json:"last_name"`
	Address      string             `bson:"address" json:"address"`
	Phone        string             `bson:"phone" json:"phone"`
	Pin_code     string             `bson:"pin_code" json:"pin_code"`
	Verified     bool               `bson:"verified" json:"verified"`
	Is_available bool               `bson:"is_available" json:"is_available"`
	Lat          float64            `bson:"lat" json:"lat"`
	Lng          float64            `bson:"lng" json:"lng"`
	Created_at   time.Time          `bson:"created_at" json:"created_at"`
	Updated_at   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CourierStatus toggles availability and optionally moves the courier.
type CourierStatus struct {
	Is_available bool     `json:"is_available"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
}
