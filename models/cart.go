package models

// CartProductRef is the product reference the storefront sends for each cart
// row. Only the id is trusted; price and title always come from the catalog.
type CartProductRef struct {
	ID string `json:"_id" binding:"required"`
}

type CartItem struct {
	Item     CartProductRef `json:"item" binding:"required"`
	Quantity int64          `json:"quantity"`
}

type CheckoutRequest struct {
	CartItems []CartItem `json:"cartItems" binding:"required,min=1,dive"`
	Customer  *Customer  `json:"customer" binding:"required"`
}

// PricedLineItem is a cart row joined with the catalog. Amounts are paise.
type PricedLineItem struct {
	ProductID  string
	Title      string
	UnitPrice  int64
	Quantity   int64
	LineAmount int64
}
