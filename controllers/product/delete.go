package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/LS2603/e-commerce-api/apperrors"
	"github.com/LS2603/e-commerce-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteProduct removes a product from the catalog.
// DELETE /products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		result := db.Delete(&models.Product{}, id)
		if result.Error != nil {
			apperrors.Render(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperrors.Render(c, apperrors.NotFound("Product"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
