package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/LS2603/e-commerce-api/apperrors"
	"github.com/LS2603/e-commerce-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAllProducts returns the full catalog ordered by id.
// GET /products
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("id").Find(&products).Error; err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProductByID returns a single product.
// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Render(c, apperrors.NotFound("Product"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
