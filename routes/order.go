package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/anquisbarr/fractal-prueba-tecnica/controllers/order"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	{
		// List all order headers
		orders.GET("", orderControllers.GetOrdersHandler(db))

		// Fetch one order with its lines
		orders.GET("/:orderNumber", orderControllers.GetOrderHandler(db))

		// Create a new order
		orders.POST("", orderControllers.CreateOrderHandler(db))

		// Replace an order's lines
		orders.PUT("/:orderNumber", orderControllers.UpdateOrderHandler(db))

		// Update order status (e.g. InProgress, Completed)
		orders.PATCH("/:orderNumber/status", orderControllers.UpdateOrderStatusHandler(db))

		// Delete an order by id
		orders.DELETE("/:id", orderControllers.DeleteOrderHandler(db))
	}
}
