package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. CustomerID references customers.id and
// UserID references the staff user who recorded the order.
type OrderModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Total      float64   `gorm:"type:numeric(12,2);not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index"`

	Customer *CustomerModel    `gorm:"foreignKey:CustomerID"`
	Items    []*OrderItemModel `gorm:"foreignKey:OrderID"`
	Tags     []*TagModel       `gorm:"many2many:order_tags;joinForeignKey:OrderID;joinReferences:TagID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price is captured at order
// time and never follows later product price changes.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
