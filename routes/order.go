package routes

import (
	orderControllers "github.com/LS2603/e-commerce-api/controllers/order"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Create a new order from (product, quantity) pairs
		orders.POST("", orderControllers.CreateOrderHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		orders.GET("", orderControllers.GetAllOrdersHandler(db))
		orders.GET("/:id", orderControllers.GetOrderHandler(db))

		// Update order status (e.g. shipped, cancelled)
		orders.PUT("/:id/status", orderControllers.UpdateOrderStatusHandler(db))

		orders.DELETE("/:id", orderControllers.DeleteOrderHandler(db))
	}
}
