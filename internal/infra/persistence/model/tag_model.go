package model

import (
	"time"

	"github.com/google/uuid"
)

// TagModel mirrors the 'tags' table. Name is unique. The many2many join tables
// (customer_tags, order_tags, product_tags, communication_tags, task_tags) are
// owned by the tagged side.
type TagModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Color       string    `gorm:"type:varchar(20)"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"type:varchar(20);not null;index"`

	Customers      []*CustomerModel      `gorm:"many2many:customer_tags;joinForeignKey:TagID;joinReferences:CustomerID"`
	Orders         []*OrderModel         `gorm:"many2many:order_tags;joinForeignKey:TagID;joinReferences:OrderID"`
	Products       []*ProductModel       `gorm:"many2many:product_tags;joinForeignKey:TagID;joinReferences:ProductID"`
	Communications []*CommunicationModel `gorm:"many2many:communication_tags;joinForeignKey:TagID;joinReferences:CommunicationID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TagModel) TableName() string {
	return "tags"
}
