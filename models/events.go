package models

import "time"

// OrderCreatedEvent is published after an order record is durably written.
type OrderCreatedEvent struct {
	Event          string    `json:"event"` // "order.created"
	OrderRecordID  string    `json:"order_record_id"`
	GatewayOrderID string    `json:"gateway_order_id"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	Timestamp      time.Time `json:"timestamp"`
}

// OrphanedIntentAlert is the payload sent to the alerting topic when a payment
// intent was created but the order write failed. Carries everything an
// operator needs to find and repair the intent.
type OrphanedIntentAlert struct {
	Event          string    `json:"event"` // "checkout.orphaned_intent"
	GatewayOrderID string    `json:"gateway_order_id"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	Receipt        string    `json:"receipt"`
	Error          string    `json:"error"`
	Timestamp      time.Time `json:"timestamp"`
}
