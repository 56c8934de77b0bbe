// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and
// the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// Sentinel errors shared by the repository implementations.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicateEmail   = errors.New("email already exists")
)

// CustomerListOptions is the conjunctive predicate for customer listings.
// Zero-valued fields contribute no constraint.
type CustomerListOptions struct {
	Search string // case-insensitive substring over name, email and company
	Status entity.CustomerStatus
	Type   entity.CustomerType
	Page   query.Pagination
}

// CustomerRepository defines the standard operations for customer persistence.
type CustomerRepository interface {
	// Create persists a new customer. A duplicate email yields ErrDuplicateEmail.
	Create(ctx context.Context, customer *entity.Customer) error

	// FindByID retrieves a customer with orders, tags and communications preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindByEmail retrieves a customer by their unique email address.
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// List returns one page of customers matching the options plus the total
	// count under the same predicate. Each customer carries its order count.
	List(ctx context.Context, opts CustomerListOptions) ([]*entity.Customer, int64, error)

	// Update persists changes to an existing customer.
	Update(ctx context.Context, customer *entity.Customer) error

	// Delete removes a customer row.
	Delete(ctx context.Context, id uuid.UUID) error

	// Segments groups customers by (type, status) with counts and completed-order
	// revenue.
	Segments(ctx context.Context) ([]entity.CustomerSegment, error)

	// TopByLifetimeValue ranks customers by completed-order revenue, descending,
	// truncated to limit.
	TopByLifetimeValue(ctx context.Context, limit int) ([]entity.CustomerValue, error)

	// AttachTag links an existing tag to a customer. Attaching an already linked
	// tag is a no-op.
	AttachTag(ctx context.Context, customerID, tagID uuid.UUID) error
}
