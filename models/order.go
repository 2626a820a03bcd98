package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // Payment completed
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping
)

type Order struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Ref       string          `gorm:"uniqueIndex;not null" json:"ref"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status    OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderItem snapshots the product name and unit price at order time, so
// historical orders are unaffected by later catalog changes.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID     uint            `gorm:"not null;index" json:"-"`
	ProductID   uint            `gorm:"not null" json:"product_id"`
	ProductName string          `gorm:"not null" json:"name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}
