package productcontroller

import (
	"net/http"

	"github.com/LS2603/e-commerce-api/apperrors"
	"github.com/LS2603/e-commerce-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

func (in *ProductInput) validate() error {
	if in.Name == "" {
		return apperrors.Validation("name is required")
	}
	if in.Price.IsNegative() {
		return apperrors.Validation("price must not be negative")
	}
	if in.Stock < 0 {
		return apperrors.Validation("stock must not be negative")
	}
	return nil
}

// CreateProduct adds a product to the catalog.
// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			apperrors.Render(c, err)
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Stock:       input.Stock,
		}
		if err := db.Create(&product).Error; err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
