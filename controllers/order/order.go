package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/LS2603/e-commerce-api/apperrors"
	"github.com/LS2603/e-commerce-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type ItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID uint        `json:"user_id"`
	Items  []ItemInput `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// lookupProducts fetches every distinct product referenced by items in one
// batch. Duplicate product ids in the request count once, so a request that
// repeats a product still passes the existence check.
func lookupProducts(db *gorm.DB, items []ItemInput) (map[uint]models.Product, error) {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, apperrors.Validation("one or more products not found")
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// -------- Core Logic --------

// CreateOrder validates the request, prices every line at the product's
// current price and persists the order with its items in one transaction.
// A failed item insert rolls back the whole order.
func CreateOrder(db *gorm.DB, req CreateOrderRequest) (*models.Order, error) {
	if req.UserID == 0 {
		return nil, apperrors.Validation("user id is required")
	}
	if len(req.Items) == 0 {
		return nil, apperrors.Validation("no items on order")
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be a positive integer")
		}
	}

	products, err := lookupProducts(db, req.Items)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		product := products[it.ProductID]
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   product.Price,
		})
	}

	order := models.Order{
		Ref:       generateOrderRef(),
		UserID:    req.UserID,
		Total:     total,
		Status:    models.OrderStatusPending,
		Items:     orderItems,
		CreatedAt: time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := CreateOrder(db, req)
		if err != nil {
			apperrors.Render(c, err)
			return
		}

		broadcastOrder(*order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("id").Find(&orders).Error; err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_items.id")
		}).First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Render(c, apperrors.NotFound("Order"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /orders/:id/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Render(c, apperrors.Validation("status is required"))
			return
		}

		var order models.Order
		if err := db.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Render(c, apperrors.NotFound("Order"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}

		order.Status = models.OrderStatus(req.Status)
		if err := db.Model(&order).Update("status", order.Status).Error; err != nil {
			apperrors.Render(c, err)
			return
		}

		broadcastOrder(order)
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /orders/:id
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		result := db.Delete(&models.Order{}, id)
		if result.Error != nil {
			apperrors.Render(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperrors.Render(c, apperrors.NotFound("Order"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
