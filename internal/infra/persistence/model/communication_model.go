package model

import (
	"time"

	"github.com/google/uuid"
)

// CommunicationModel mirrors the 'communications' table. Follow-ups chain
// through ParentCommunicationID back to the same table.
type CommunicationModel struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID                uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type                  string     `gorm:"type:varchar(20);not null;index"`
	Content               string     `gorm:"type:text;not null"`
	Direction             string     `gorm:"type:varchar(20);not null"`
	Status                string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ScheduledAt           *time.Time `gorm:"index"`
	DurationMinutes       *int
	ParentCommunicationID *uuid.UUID `gorm:"type:uuid;index"`

	Customer *CustomerModel `gorm:"foreignKey:CustomerID"`
	Tags     []*TagModel    `gorm:"many2many:communication_tags;joinForeignKey:CommunicationID;joinReferences:TagID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommunicationModel) TableName() string {
	return "communications"
}
