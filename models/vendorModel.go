package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vendor struct {
	ID                primitive.ObjectID   `bson:"_id" json:"_id"`
	Name              string               `bson:"name" json:"name"`
	Owner_name        string               `bson:"owner_name" json:"owner_name"`
	Food_type         []string             `bson:"food_type" json:"food_type"`
	Pin_code          string               `bson:"pin_code" json:"pin_code"`
	Address           string               `bson:"address" json:"address"`
	Phone             string               `bson:"phone" json:"phone"`
	Email             string               `bson:"email" json:"email"`
	Password          string               `bson:"password" json:"-"`
	Salt              string               `bson:"salt" json:"-"`
	Service_available bool                 `bson:"service_available" json:"service_available"`
	Cover_images      []string             `bson:"cover_images" json:"cover_images"`
	Rating            float64              `bson:"rating" json:"rating"`
	Foods             []primitive.ObjectID `bson:"foods" json:"foods"`
	Lat               float64              `bson:"lat" json:"lat"`
	Lng               float64              `bson:"lng" json:"lng"`
	Created_at        time.Time            `bson:"created_at" json:"created_at"`
	Updated_at        time.Time            `bson:"updated_at" json:"updated_at"`
}

type VendorUpdate struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	Food_type []string `json:"food_type"`
}

// VendorWithFoods is a vendor with its food references resolved.
type VendorWithFoods struct {
	Vendor
	Food_items []Food `json:"food_items"`
}
