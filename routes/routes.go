package routes

import (
	"net/http"

	"github.com/KingAshu22/Parichay-Admin/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	checkoutController *controllers.CheckoutController,
	orderController *controllers.OrderController,
) {
	api := r.Group("/api")
	{
		api.POST("/checkout", checkoutController.Checkout)
		api.GET("/orders/:orderId", orderController.GetOrderByID)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
}
