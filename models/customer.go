package models

type ShippingAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postalCode" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// Customer is the snapshot submitted with a checkout and stored verbatim on
// the order, so the order detail view never depends on a mutable user record.
type Customer struct {
	Name            string          `json:"name" bson:"name"`
	Email           string          `json:"email,omitempty" bson:"email,omitempty"`
	Phone           string          `json:"phone,omitempty" bson:"phone,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shipping_address"`
}
