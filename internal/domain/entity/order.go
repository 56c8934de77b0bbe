package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order belongs to a customer and records who created it. Total must be positive
// and an order always carries at least one item. Only cancelled orders may be
// deleted.
type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	UserID     uuid.UUID
	Total      float64
	Status     OrderStatus
	Customer   *Customer
	Items      []*OrderItem
	Tags       []*Tag
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem is a single line of an order, priced at order time.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     float64
	Product   *Product
}

// PurchaseTotals summarizes a customer's completed orders.
type PurchaseTotals struct {
	TotalPurchases float64
	TotalOrders    int64
}

// OrderStatusReport is one row of the order report: orders grouped by status
// within a date window.
type OrderStatusReport struct {
	Status     OrderStatus
	OrderCount int64
	TotalValue float64
}
