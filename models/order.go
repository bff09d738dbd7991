package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLineItem is the line-item shape the payment gateway expects and the
// shape persisted on the order. Amount is the per-unit price in paise,
// string-encoded as the gateway requires.
type OrderLineItem struct {
	Name     string `json:"name" bson:"name"`
	Amount   string `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
	Quantity int64  `json:"quantity" bson:"quantity"`
}

// PaymentIntent is the gateway's record of a created order. This service only
// ever creates these; it never mutates them.
type PaymentIntent struct {
	GatewayOrderID string `json:"id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	Status         string `json:"status"`
}

// Order is written exactly once, only after the payment intent exists, and is
// read-only afterwards.
type Order struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CartItems      []OrderLineItem    `json:"cartItems" bson:"cart_items"`
	Customer       Customer           `json:"customer" bson:"customer"`
	OrderID        string             `json:"orderId" bson:"order_id"`
	Amount         int64              `json:"amount" bson:"amount"`
	Currency       string             `json:"currency" bson:"currency"`
	Receipt        string             `json:"receipt" bson:"receipt"`
	PaymentCapture int                `json:"payment_capture" bson:"payment_capture"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
}

type CheckoutResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// OrderDetailsResponse is what the admin order page consumes.
type OrderDetailsResponse struct {
	OrderDetails Order    `json:"orderDetails"`
	Customer     Customer `json:"customer"`
}
