package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel mirrors the 'tasks' table. RelatedEntityType/RelatedEntityID form a
// polymorphic pointer at a customer, order or communication; the target row is
// not enforced by a foreign key.
type TaskModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title             string    `gorm:"type:varchar(255);not null"`
	Description       string    `gorm:"type:text"`
	AssignedToID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedByID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Priority          string    `gorm:"type:varchar(20);not null;default:'medium';index"`
	Status            string    `gorm:"type:varchar(20);not null;default:'todo';index"`
	DueDate           *time.Time `gorm:"index"`
	CompletionMinutes *int
	RelatedEntityType *string    `gorm:"type:varchar(20)"`
	RelatedEntityID   *uuid.UUID `gorm:"type:uuid"`

	AssignedTo *UserModel  `gorm:"foreignKey:AssignedToID"`
	CreatedBy  *UserModel  `gorm:"foreignKey:CreatedByID"`
	Tags       []*TagModel `gorm:"many2many:task_tags;joinForeignKey:TaskID;joinReferences:TagID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
