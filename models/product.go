package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product mirrors the catalog document. Price is stored in paise.
type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       int64              `json:"price" bson:"price"`
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ProductPricing is the projection the checkout flow needs from the catalog:
// the display name and the current unit price in paise.
type ProductPricing struct {
	Title string
	Price int64
}
