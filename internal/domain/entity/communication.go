package entity

import (
	"time"

	"github.com/google/uuid"
)

// CommunicationType is the channel a customer touchpoint happened on.
type CommunicationType string

const (
	CommunicationTypeEmail   CommunicationType = "email"
	CommunicationTypePhone   CommunicationType = "phone"
	CommunicationTypeMeeting CommunicationType = "meeting"
	CommunicationTypeChat    CommunicationType = "chat"
	CommunicationTypeSMS     CommunicationType = "sms"
)

// String returns the string representation of the type.
func (t CommunicationType) String() string {
	return string(t)
}

// IsValid checks if the type is a valid value.
func (t CommunicationType) IsValid() bool {
	switch t {
	case CommunicationTypeEmail, CommunicationTypePhone, CommunicationTypeMeeting,
		CommunicationTypeChat, CommunicationTypeSMS:
		return true
	default:
		return false
	}
}

// CommunicationDirection distinguishes who initiated the touchpoint.
type CommunicationDirection string

const (
	DirectionInbound  CommunicationDirection = "inbound"
	DirectionOutbound CommunicationDirection = "outbound"
)

// String returns the string representation of the direction.
func (d CommunicationDirection) String() string {
	return string(d)
}

// IsValid checks if the direction is a valid value.
func (d CommunicationDirection) IsValid() bool {
	switch d {
	case DirectionInbound, DirectionOutbound:
		return true
	default:
		return false
	}
}

// CommunicationStatus tracks whether a touchpoint has happened yet.
type CommunicationStatus string

const (
	CommunicationStatusPending   CommunicationStatus = "pending"
	CommunicationStatusCompleted CommunicationStatus = "completed"
	CommunicationStatusFailed    CommunicationStatus = "failed"
)

// String returns the string representation of the status.
func (s CommunicationStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid value.
func (s CommunicationStatus) IsValid() bool {
	switch s {
	case CommunicationStatusPending, CommunicationStatusCompleted, CommunicationStatusFailed:
		return true
	default:
		return false
	}
}

// Communication records a single customer touchpoint. Follow-ups form a chain
// through ParentCommunicationID.
type Communication struct {
	ID                    uuid.UUID
	CustomerID            uuid.UUID
	UserID                uuid.UUID
	Type                  CommunicationType
	Content               string
	Direction             CommunicationDirection
	Status                CommunicationStatus
	ScheduledAt           *time.Time
	DurationMinutes       *int
	ParentCommunicationID *uuid.UUID
	Customer              *Customer
	Tags                  []*Tag
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CommunicationStat is one aggregation bucket of communications grouped by
// (type, direction, status), with the average duration where recorded.
type CommunicationStat struct {
	Type               CommunicationType
	Direction          CommunicationDirection
	Status             CommunicationStatus
	Count              int64
	AvgDurationMinutes float64
}

// CommunicatorCount ranks a user by the number of communications they logged.
// Name and Email are resolved after grouping.
type CommunicatorCount struct {
	UserID uuid.UUID
	Count  int64
	Name   string
	Email  string
}

// ConversionStat relates a communication to the orders its customer placed
// inside the analysis window.
type ConversionStat struct {
	CommunicationID uuid.UUID
	Type            CommunicationType
	CustomerOrders  int64
	OrderValue      float64
}

// TypeEffectiveness aggregates conversion stats per communication type.
type TypeEffectiveness struct {
	TotalCommunications int64
	TotalConversions    int64
	TotalOrderValue     float64
}
