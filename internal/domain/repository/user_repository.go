package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a staff user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for staff-account persistence.
type UserRepository interface {
	// Create persists a new user. A duplicate email yields ErrDuplicateEmail.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
