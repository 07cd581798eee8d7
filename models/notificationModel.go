package models

import "time"

const (
	EventOrderCreated        = "order.created"
	EventOrderStatus         = "order.status"
	EventDeliveryAssigned    = "delivery.assigned"
	EventDeliveryUnavailable = "delivery.unavailable"
)

// Notification is the event fanned out to brokers and vendor dashboards.
type Notification struct {
	Event       string      `json:"event"`
	Vendor_id   string      `json:"vendor_id"`
	Customer_id string      `json:"customer_id,omitempty"`
	Order_id    string      `json:"order_id"`
	Payload     interface{} `json:"payload"`
	Created_at  time.Time   `json:"created_at"`
}
