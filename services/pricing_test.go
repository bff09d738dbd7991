package services

import (
	"testing"

	"github.com/KingAshu22/Parichay-Admin/models"
	"github.com/stretchr/testify/assert"
)

func cartItem(id string, qty int64) models.CartItem {
	return models.CartItem{Item: models.CartProductRef{ID: id}, Quantity: qty}
}

func TestPriceCart_ComputesLineAmountsPreservingOrder(t *testing.T) {
	pricing := map[string]models.ProductPricing{
		"prodA": {Title: "Silk Saree", Price: 50000},
		"prodB": {Title: "Cotton Kurta", Price: 20000},
	}

	lines, cerr := priceCart([]models.CartItem{
		cartItem("prodB", 3),
		cartItem("prodA", 1),
	}, pricing)

	assert.Nil(t, cerr)
	assert.Len(t, lines, 2)
	// order preserved from the input cart, not the catalog
	assert.Equal(t, "prodB", lines[0].ProductID)
	assert.Equal(t, int64(60000), lines[0].LineAmount)
	assert.Equal(t, "prodA", lines[1].ProductID)
	assert.Equal(t, int64(50000), lines[1].LineAmount)
}

func TestPriceCart_UnknownProductFailsWholeCart(t *testing.T) {
	pricing := map[string]models.ProductPricing{
		"prodA": {Title: "Silk Saree", Price: 50000},
	}

	lines, cerr := priceCart([]models.CartItem{
		cartItem("prodA", 1),
		cartItem("ghost", 1),
	}, pricing)

	assert.Nil(t, lines)
	if assert.NotNil(t, cerr) {
		assert.Equal(t, KindUnknownProduct, cerr.Kind)
		assert.Contains(t, cerr.Message, "ghost")
	}
}

func TestPriceCart_RejectsNonPositiveQuantity(t *testing.T) {
	pricing := map[string]models.ProductPricing{
		"prodA": {Title: "Silk Saree", Price: 50000},
	}

	for _, qty := range []int64{0, -2} {
		lines, cerr := priceCart([]models.CartItem{cartItem("prodA", qty)}, pricing)
		assert.Nil(t, lines)
		if assert.NotNil(t, cerr) {
			assert.Equal(t, KindInvalidQuantity, cerr.Kind)
		}
	}
}

func TestAggregate_SingleLine(t *testing.T) {
	total, items := aggregate([]models.PricedLineItem{
		{ProductID: "prodA", Title: "Silk Saree", UnitPrice: 50000, Quantity: 2, LineAmount: 100000},
	})

	assert.Equal(t, int64(100000), total)
	assert.Len(t, items, 1)
	assert.Equal(t, "Silk Saree", items[0].Name)
	assert.Equal(t, "50000", items[0].Amount)
	assert.Equal(t, "INR", items[0].Currency)
	assert.Equal(t, int64(2), items[0].Quantity)
}

func TestAggregate_SumsMultipleLines(t *testing.T) {
	total, items := aggregate([]models.PricedLineItem{
		{ProductID: "prodA", Title: "Silk Saree", UnitPrice: 50000, Quantity: 1, LineAmount: 50000},
		{ProductID: "prodB", Title: "Cotton Kurta", UnitPrice: 20000, Quantity: 3, LineAmount: 60000},
	})

	assert.Equal(t, int64(110000), total)
	assert.Len(t, items, 2)
	assert.Equal(t, "20000", items[1].Amount)
}

func TestAggregate_EmptyInput(t *testing.T) {
	total, items := aggregate(nil)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, items)
}
