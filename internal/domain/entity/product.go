package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus represents whether a product is offered for sale.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// String returns the string representation of the status.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid value.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive:
		return true
	default:
		return false
	}
}

// Product is a sellable item. A product referenced by any order item cannot be
// deleted.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Status      ProductStatus
	Tags        []*Tag
	OrderItems  []*OrderItem
	OrderCount  int64 // Populated on list queries; number of order items referencing the product.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
