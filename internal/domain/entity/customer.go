// Package entity contains the core business objects of the CRM domain,
// each representing a unique, identifiable concept within the system.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CustomerStatus represents the lifecycle state of a customer record.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
	CustomerStatusProspect CustomerStatus = "prospect"
)

// String returns the string representation of the status.
func (s CustomerStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid value.
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusProspect:
		return true
	default:
		return false
	}
}

// CustomerType classifies how the business relates to a customer.
type CustomerType string

const (
	CustomerTypeRegular CustomerType = "regular"
	CustomerTypeVIP     CustomerType = "vip"
	CustomerTypeLead    CustomerType = "lead"
)

// String returns the string representation of the type.
func (t CustomerType) String() string {
	return string(t)
}

// IsValid checks if the type is a valid value.
func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeRegular, CustomerTypeVIP, CustomerTypeLead:
		return true
	default:
		return false
	}
}

// Customer is the central entity of the CRM. Email is unique across all customers.
type Customer struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	Company        string
	Notes          string
	Status         CustomerStatus
	Type           CustomerType
	Tags           []*Tag
	Orders         []*Order
	Communications []*Communication
	OrderCount     int64 // Populated on list queries; number of orders placed.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CustomerSegment is one aggregation bucket of the segment breakdown:
// customers grouped by (type, status) with a count and completed-order revenue.
type CustomerSegment struct {
	Type          CustomerType
	Status        CustomerStatus
	CustomerCount int64
	Revenue       float64
}

// CustomerValue ranks a customer by lifetime value (sum of completed order totals).
type CustomerValue struct {
	CustomerID    uuid.UUID
	Name          string
	Email         string
	LifetimeValue float64
	OrderCount    int64
}
