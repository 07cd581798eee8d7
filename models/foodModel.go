package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Food struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Vendor_id   primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	Name        string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Category    string             `bson:"category" json:"category"`
	Food_type   string             `bson:"food_type" json:"food_type" validate:"required"`
	Ready_time  int                `bson:"ready_time" json:"ready_time" validate:"gte=0"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	Rating      float64            `bson:"rating" json:"rating"`
	Images      []string           `bson:"images" json:"images"`
	Created_at  time.Time          `bson:"created_at" json:"created_at"`
	Updated_at  time.Time          `bson:"updated_at" json:"updated_at"`
}
