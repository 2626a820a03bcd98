package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LS2603/e-commerce-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.User{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/carts", CreateCartHandler(db))
	r.GET("/carts", GetAllCartsHandler(db))
	r.GET("/carts/:id", GetCartHandler(db))
	r.PUT("/carts/:id/item", UpsertCartItemHandler(db))
	r.DELETE("/carts/:id", DeleteCartHandler(db))
	return r
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: 10}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateCart(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	p := seedProduct(t, db, "Mug", "9.99")

	rec := doJSON(r, "POST", "/carts", gin.H{
		"user_id": 1,
		"items":   []gin.H{{"product_id": p.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	items := resp["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Mug", item["name"])
	assert.Equal(t, float64(3), item["quantity"])
	assert.Equal(t, 9.99, item["price"])
}

func TestCreateCart_UnknownProductPersistsNothing(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	rec := doJSON(r, "POST", "/carts", gin.H{
		"user_id": 1,
		"items":   []gin.H{{"product_id": 9999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var carts, items int64
	db.Model(&models.Cart{}).Count(&carts)
	db.Model(&models.CartItem{}).Count(&items)
	assert.Zero(t, carts)
	assert.Zero(t, items)
}

func TestGetCart_ShowsCurrentPrice(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	p := seedProduct(t, db, "Mug", "9.99")

	rec := doJSON(r, "POST", "/carts", gin.H{
		"user_id": 1,
		"items":   []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Carts never snapshot: a price change shows up on the next read.
	require.NoError(t, db.Model(&p).Update("price", decimal.RequireFromString("12.50")).Error)

	rec = doJSON(r, "GET", "/carts/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	items := resp["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, 12.5, items[0].(map[string]any)["price"])
}

func TestGetCart_NotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	rec := doJSON(r, "GET", "/carts/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpsertCartItem_InsertThenOverwrite(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	mug := seedProduct(t, db, "Mug", "9.99")
	pen := seedProduct(t, db, "Pen", "1.50")

	rec := doJSON(r, "POST", "/carts", gin.H{
		"user_id": 1,
		"items":   []gin.H{{"product_id": mug.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Insert a new line
	rec = doJSON(r, "PUT", "/carts/1/item", gin.H{"product_id": pen.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Overwrite its quantity
	rec = doJSON(r, "PUT", "/carts/1/item", gin.H{"product_id": pen.ID, "quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)

	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ? AND product_id = ?", 1, pen.ID).First(&item).Error)
	assert.Equal(t, 5, item.Quantity)

	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", 1).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestUpsertCartItem_ZeroQuantityRemoves(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	p := seedProduct(t, db, "Mug", "9.99")

	rec := doJSON(r, "POST", "/carts", gin.H{
		"user_id": 1,
		"items":   []gin.H{{"product_id": p.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(r, "PUT", "/carts/1/item", gin.H{"product_id": p.ID, "quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)

	// Removing again is a no-op, not an error.
	rec = doJSON(r, "PUT", "/carts/1/item", gin.H{"product_id": p.ID, "quantity": -1})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpsertCartItem_MissingCartWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	p := seedProduct(t, db, "Mug", "9.99")

	rec := doJSON(r, "PUT", "/carts/42/item", gin.H{"product_id": p.ID, "quantity": 2})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count, "no orphan rows for a nonexistent cart")
}

func TestUpsertCartItem_Validation(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	p := seedProduct(t, db, "Mug", "9.99")

	rec := doJSON(r, "POST", "/carts", gin.H{
		"user_id": 1,
		"items":   []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(r, "PUT", "/carts/1/item", gin.H{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, "PUT", "/carts/1/item", gin.H{"product_id": p.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCart(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	p := seedProduct(t, db, "Mug", "9.99")

	rec := doJSON(r, "POST", "/carts", gin.H{
		"user_id": 1,
		"items":   []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(r, "DELETE", "/carts/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items int64
	db.Model(&models.CartItem{}).Count(&items)
	assert.Zero(t, items, "cascade should remove cart items")

	rec = doJSON(r, "DELETE", "/carts/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
