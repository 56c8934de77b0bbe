package repository

import (
	"context"
	"errors"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderListOptions is the conjunctive predicate for order listings. Nil/zero
// fields contribute no constraint.
type OrderListOptions struct {
	CustomerID *uuid.UUID
	UserID     *uuid.UUID
	Status     entity.OrderStatus
	MinTotal   *float64
	MaxTotal   *float64
	StartDate  *time.Time
	EndDate    *time.Time
	Page       query.Pagination
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists an order together with its items as one compound write.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with customer, items and products preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List returns one page of orders matching the options plus the total count
	// under the same predicate, newest first.
	List(ctx context.Context, opts OrderListOptions) ([]*entity.Order, int64, error)

	// UpdateStatus transitions an order to the given status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// Delete removes an order row. Callers enforce the cancelled-only guard.
	Delete(ctx context.Context, id uuid.UUID) error

	// SumCompletedByCustomer totals a customer's completed orders.
	SumCompletedByCustomer(ctx context.Context, customerID uuid.UUID) (entity.PurchaseTotals, error)

	// AdvancedQuery runs a generic filter list against allow-listed order fields.
	// Filters must be validated with query.ValidateFilters before the call.
	AdvancedQuery(ctx context.Context, filters []query.Filter, sort query.Sort, page query.Pagination) ([]*entity.Order, int64, error)

	// ReportByStatus groups orders created inside the window by status.
	ReportByStatus(ctx context.Context, start, end time.Time) ([]entity.OrderStatusReport, error)

	// BulkUpdateStatus updates every listed order owned by userID in a single
	// statement and reports the number of rows affected. Unmatched ids are
	// silently skipped.
	BulkUpdateStatus(ctx context.Context, orderIDs []uuid.UUID, status entity.OrderStatus, userID uuid.UUID) (int64, error)

	// FindRecentByCustomer returns the customer's newest orders with items and
	// products preloaded, truncated to limit.
	FindRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Order, error)
}

// OrderFilterFields is the allow-list for the advanced order query and its sort
// clause. Keys are the logical API field names.
var OrderFilterFields = map[string]struct{}{
	"status":     {},
	"total":      {},
	"customerId": {},
	"userId":     {},
	"createdAt":  {},
}
