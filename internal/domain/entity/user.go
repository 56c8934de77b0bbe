package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus gates whether an account may authenticate.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// String returns the string representation of the status.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid value.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	default:
		return false
	}
}

// User is a staff account. Email is unique; PasswordHash never leaves the
// persistence and auth layers.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
