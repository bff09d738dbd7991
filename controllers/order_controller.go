package controllers

import (
	"net/http"

	"github.com/KingAshu22/Parichay-Admin/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders services.OrderService
}

func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// GetOrderByID handles GET /orders/:orderId for the admin order detail page.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	resp, serr := oc.orders.GetOrderDetails(c.Request.Context(), c.Param("orderId"))
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, resp)
}
