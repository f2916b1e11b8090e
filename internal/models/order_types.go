package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the statuses an admin may set.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the model for the 'orders' table
type Order struct {
	ID           int64           `json:"order_id" db:"order_id"`
	CustomerName string          `json:"customer_name" db:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`
	OrderDate    time.Time       `json:"order_date" db:"order_date"`
	Status       string          `json:"status" db:"status"`
}

// OrderItem is the model for the 'order_items' table
type OrderItem struct {
	ID        int64           `json:"item_id" db:"item_id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	ColorName string          `json:"color_name" db:"color_name"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"` // Price at the time of purchase
}
