package routes

import (
	productcontroller "github.com/LS2603/e-commerce-api/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetAllProducts(db))

		// Excel export of the full catalog (admin tooling)
		products.GET("/export", productcontroller.ExportProductsToExcel(db))

		products.GET("/:id", productcontroller.GetProductByID(db))
		products.POST("", productcontroller.CreateProduct(db))
		products.PUT("/:id", productcontroller.UpdateProduct(db))
		products.DELETE("/:id", productcontroller.DeleteProduct(db))
	}
}
