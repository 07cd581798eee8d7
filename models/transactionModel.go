package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionStatus string

const (
	TransactionOpen      TransactionStatus = "OPEN"
	TransactionConfirmed TransactionStatus = "CONFIRMED"
	TransactionFailed    TransactionStatus = "FAILED"
)

const DefaultPaymentMode = "COD"

type Transaction struct {
	ID               primitive.ObjectID `bson:"_id" json:"_id"`
	Customer         primitive.ObjectID `bson:"customer" json:"customer"`
	Vendor_id        string             `bson:"vendor_id" json:"vendor_id"`
	Order_id         string             `bson:"order_id" json:"order_id"`
	Gross_amount     float64            `bson:"gross_amount" json:"gross_amount"`
	Order_value      float64            `bson:"order_value" json:"order_value"`
	Offer_used       string             `bson:"offer_used" json:"offer_used"`
	Status           TransactionStatus  `bson:"status" json:"status"`
	Payment_mode     string             `bson:"payment_mode" json:"payment_mode"`
	Payment_response string             `bson:"payment_response" json:"payment_response"`
	Created_at       time.Time          `bson:"created_at" json:"created_at"`
	Updated_at       time.Time          `bson:"updated_at" json:"updated_at"`
}

// TransactionLink is written together with a status transition.
type TransactionLink struct {
	Vendor_id string
	Order_id  string
}
