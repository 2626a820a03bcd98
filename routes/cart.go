package routes

import (
	cartControllers "github.com/LS2603/e-commerce-api/controllers/cart"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	carts := r.Group("/carts")
	{
		carts.GET("", cartControllers.GetAllCartsHandler(db))
		carts.GET("/:id", cartControllers.GetCartHandler(db))
		carts.POST("", cartControllers.CreateCartHandler(db))

		// Upsert a single line item (quantity <= 0 removes it)
		carts.PUT("/:id/item", cartControllers.UpsertCartItemHandler(db))

		carts.DELETE("/:id", cartControllers.DeleteCartHandler(db))
	}
}
