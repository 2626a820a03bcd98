package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/LS2603/e-commerce-api/apperrors"
	"github.com/LS2603/e-commerce-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type ItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateCartRequest struct {
	UserID uint        `json:"user_id"`
	Items  []ItemInput `json:"items"`
}

type UpsertItemRequest struct {
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

// CartItemView is a cart line joined with the product's name and current
// catalog price. Carts, unlike orders, never snapshot prices.
type CartItemView struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// -------- Helpers --------

func fetchCartItems(db *gorm.DB, cartID uint) ([]CartItemView, error) {
	items := make([]CartItemView, 0)
	err := db.Table("cart_items").
		Select("cart_items.product_id, products.name, cart_items.quantity, products.price").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id").
		Scan(&items).Error
	return items, err
}

func cartJSON(cart models.Cart, items []CartItemView) gin.H {
	return gin.H{
		"id":         cart.ID,
		"user_id":    cart.UserID,
		"created_at": cart.CreatedAt,
		"items":      items,
	}
}

// -------- Core Logic --------

// CreateCart validates the request the same way order creation does and
// persists the cart with its items in one transaction.
func CreateCart(db *gorm.DB, req CreateCartRequest) (*models.Cart, error) {
	if req.UserID == 0 {
		return nil, apperrors.Validation("user id is required")
	}
	if len(req.Items) == 0 {
		return nil, apperrors.Validation("no items in cart")
	}

	// Every referenced product must exist; duplicates count once.
	seen := make(map[uint]bool, len(req.Items))
	ids := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be a positive integer")
		}
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	var count int64
	if err := db.Model(&models.Product{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		return nil, apperrors.Validation("one or more products not found")
	}

	cartItems := make([]models.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		cartItems = append(cartItems, models.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	cart := models.Cart{
		UserID:    req.UserID,
		Items:     cartItems,
		CreatedAt: time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// -------- Handlers --------

// POST /carts
func CreateCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := CreateCart(db, req)
		if err != nil {
			apperrors.Render(c, err)
			return
		}

		items, err := fetchCartItems(db, cart.ID)
		if err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusCreated, cartJSON(*cart, items))
	}
}

// GET /carts
func GetAllCartsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var carts []models.Cart
		if err := db.Order("id").Find(&carts).Error; err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusOK, carts)
	}
}

// GET /carts/:id
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
			return
		}

		var cart models.Cart
		if err := db.First(&cart, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Render(c, apperrors.NotFound("Cart"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}

		items, err := fetchCartItems(db, cart.ID)
		if err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusOK, cartJSON(cart, items))
	}
}

// PUT /carts/:id/item
//
// Quantity <= 0 removes the item (a no-op when it is already gone);
// otherwise the item is inserted, or its quantity overwritten when the
// (cart, product) pair already exists. The cart's existence is checked
// before any write, so a bad cart id never leaves an orphan row.
func UpsertCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
			return
		}

		var req UpsertItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.ProductID == nil || req.Quantity == nil {
			apperrors.Render(c, apperrors.Validation("product_id and numeric quantity required"))
			return
		}

		var cart models.Cart
		if err := db.First(&cart, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Render(c, apperrors.NotFound("Cart"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}

		if *req.Quantity <= 0 {
			err = db.Where("cart_id = ? AND product_id = ?", cart.ID, *req.ProductID).
				Delete(&models.CartItem{}).Error
		} else {
			err = db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"quantity": *req.Quantity}),
			}).Create(&models.CartItem{
				CartID:    cart.ID,
				ProductID: *req.ProductID,
				Quantity:  *req.Quantity,
			}).Error
		}
		if err != nil {
			apperrors.Render(c, err)
			return
		}

		items, err := fetchCartItems(db, cart.ID)
		if err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusOK, cartJSON(cart, items))
	}
}

// DELETE /carts/:id
func DeleteCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
			return
		}

		result := db.Delete(&models.Cart{}, id)
		if result.Error != nil {
			apperrors.Render(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperrors.Render(c, apperrors.NotFound("Cart"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart deleted"})
	}
}
