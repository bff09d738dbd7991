package services

import (
	"fmt"
	"strconv"

	"github.com/KingAshu22/Parichay-Admin/models"
)

// CurrencyINR is the only currency the storefront charges in. All amounts are
// paise; arithmetic on this path is integer-only.
const CurrencyINR = "INR"

// priceCart joins each cart row with catalog pricing, preserving cart order.
// The whole cart fails on the first unknown product or non-positive quantity:
// silently dropping a line would under-charge or under-fulfil.
func priceCart(items []models.CartItem, pricing map[string]models.ProductPricing) ([]models.PricedLineItem, *CheckoutError) {
	lines := make([]models.PricedLineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, newCheckoutError(KindInvalidQuantity,
				fmt.Sprintf("Invalid quantity %d for product %s", item.Quantity, item.Item.ID), nil)
		}
		info, ok := pricing[item.Item.ID]
		if !ok {
			return nil, newCheckoutError(KindUnknownProduct,
				"Product not found: "+item.Item.ID, nil)
		}
		lines = append(lines, models.PricedLineItem{
			ProductID:  item.Item.ID,
			Title:      info.Title,
			UnitPrice:  info.Price,
			Quantity:   item.Quantity,
			LineAmount: info.Price * item.Quantity,
		})
	}
	return lines, nil
}

// aggregate sums priced lines into the total charged amount and re-expresses
// each line in the gateway's shape (per-unit amount, string-encoded).
func aggregate(lines []models.PricedLineItem) (int64, []models.OrderLineItem) {
	var total int64
	gatewayItems := make([]models.OrderLineItem, 0, len(lines))
	for _, line := range lines {
		total += line.LineAmount
		gatewayItems = append(gatewayItems, models.OrderLineItem{
			Name:     line.Title,
			Amount:   strconv.FormatInt(line.UnitPrice, 10),
			Currency: CurrencyINR,
			Quantity: line.Quantity,
		})
	}
	return total, gatewayItems
}
