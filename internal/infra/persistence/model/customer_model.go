// Package model contains the GORM-specific structs that mirror the database
// schema. These types never leave the persistence layer; repositories map them
// to and from domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModel mirrors the 'customers' table. PostgreSQL generates UUIDs via
// uuid_generate_v7().
type CustomerModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Email   string    `gorm:"type:varchar(255);unique;not null"`
	Phone   string    `gorm:"type:varchar(50)"`
	Company string    `gorm:"type:varchar(255)"`
	Notes   string    `gorm:"type:text"`
	Status  string    `gorm:"type:varchar(20);not null;default:'active';index"`
	Type    string    `gorm:"type:varchar(20);not null;default:'regular';index"`

	Tags           []*TagModel           `gorm:"many2many:customer_tags;joinForeignKey:CustomerID;joinReferences:TagID"`
	Orders         []*OrderModel         `gorm:"foreignKey:CustomerID"`
	Communications []*CommunicationModel `gorm:"foreignKey:CustomerID"`

	// OrderCount is filled by list queries through a correlated subquery.
	OrderCount int64 `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
