package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(12,2);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active';index"`

	Tags       []*TagModel       `gorm:"many2many:product_tags;joinForeignKey:ProductID;joinReferences:TagID"`
	OrderItems []*OrderItemModel `gorm:"foreignKey:ProductID"`

	// OrderCount is filled by list queries through a correlated subquery.
	OrderCount int64 `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
