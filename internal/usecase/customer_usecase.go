// Package usecase defines the application-layer interfaces and their
// input/output types. Handlers depend on these interfaces, never on the
// concrete services in impl.
package usecase

import (
	"context"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// CreateCustomerInput represents the input for creating a customer.
type CreateCustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Status  string `json:"status,omitempty"`
	Type    string `json:"type,omitempty"`
}

// UpdateCustomerInput represents a partial update; nil fields stay untouched.
type UpdateCustomerInput struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Status  *string `json:"status,omitempty"`
	Type    *string `json:"type,omitempty"`
}

// ListCustomersInput carries the optional listing predicate.
type ListCustomersInput struct {
	Search string `json:"search" query:"search"`
	Status string `json:"status" query:"status"`
	Type   string `json:"type" query:"type"`
	Page   query.Pagination
}

// CustomerAnalytics bundles the segment breakdown with the top customers by
// lifetime value.
type CustomerAnalytics struct {
	Segments     []entity.CustomerSegment `json:"segments"`
	TopCustomers []entity.CustomerValue   `json:"topCustomers"`
}

// InteractionHistory is the combined recent-activity view of one customer.
type InteractionHistory struct {
	Communications []*entity.Communication `json:"communications"`
	Orders         []*entity.Order         `json:"orders"`
}

// CustomerUsecase defines the customer management use cases.
type CustomerUsecase interface {
	CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	ListCustomers(ctx context.Context, input *ListCustomersInput) (*query.Page[*entity.Customer], error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	// Analytics groups customers by (type, status) and ranks the top 10 by
	// completed-order revenue.
	Analytics(ctx context.Context) (*CustomerAnalytics, error)

	// AddTag upserts a tag by name and attaches it to the customer.
	AddTag(ctx context.Context, customerID uuid.UUID, tagName string) (*entity.Tag, error)

	// GetInteractionHistory returns the customer's last 50 communications and
	// last 20 orders.
	GetInteractionHistory(ctx context.Context, customerID uuid.UUID) (*InteractionHistory, error)
}
