package entity

import (
	"time"

	"github.com/google/uuid"
)

// TagType scopes a tag to the entity kind it is meant to label.
type TagType string

const (
	TagTypeProduct       TagType = "product"
	TagTypeCustomer      TagType = "customer"
	TagTypeCommunication TagType = "communication"
	TagTypeOrder         TagType = "order"
)

// String returns the string representation of the type.
func (t TagType) String() string {
	return string(t)
}

// IsValid checks if the type is a valid value.
func (t TagType) IsValid() bool {
	switch t {
	case TagTypeProduct, TagTypeCustomer, TagTypeCommunication, TagTypeOrder:
		return true
	default:
		return false
	}
}

// Tag labels customers, products, orders and communications. Name is unique.
// A tag attached to any entity cannot be deleted.
type Tag struct {
	ID          uuid.UUID
	Name        string
	Color       string
	Description string
	Type        TagType
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Products       []*Product
	Customers      []*Customer
	Communications []*Communication
	Orders         []*Order
}
