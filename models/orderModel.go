package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderWaiting      = "Waiting"
	OrderAccepted     = "Accepted"
	OrderRejected     = "Rejected"
	OrderUnderProcess = "UnderProcess"
	OrderReady        = "Ready"
)

// DefaultReadyTime is the preparation estimate, in minutes, of a new order.
const DefaultReadyTime = 45

type OrderItem struct {
	Food primitive.ObjectID `bson:"food" json:"food"`
	Unit int                `bson:"unit" json:"unit"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Order_id       string             `bson:"order_id" json:"order_id"`
	Customer_id    primitive.ObjectID `bson:"customer_id" json:"customer_id"`
	Vendor_id      primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	Transaction_id primitive.ObjectID `bson:"transaction_id" json:"transaction_id"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Total_amount   float64            `bson:"total_amount" json:"total_amount"`
	Paid_amount    float64            `bson:"paid_amount" json:"paid_amount"`
	Order_date     time.Time          `bson:"order_date" json:"order_date"`
	Order_status   string             `bson:"order_status" json:"order_status"`
	Remarks        string             `bson:"remarks" json:"remarks"`
	Delivery_id    string             `bson:"delivery_id" json:"delivery_id"`
	Ready_time     int                `bson:"ready_time" json:"ready_time"`
	Created_at     time.Time          `bson:"created_at" json:"created_at"`
	Updated_at     time.Time          `bson:"updated_at" json:"updated_at"`
}

type OrderLine struct {
	Food Food `json:"food"`
	Unit int  `json:"unit"`
}

// OrderDetails is an order with its food references resolved.
type OrderDetails struct {
	Order
	Lines []OrderLine `json:"lines"`
}

// ValidVendorStatus reports whether a vendor may move an order into status.
func ValidVendorStatus(status string) bool {
	switch status {
	case OrderAccepted, OrderRejected, OrderUnderProcess, OrderReady:
		return true
	}
	return false
}
