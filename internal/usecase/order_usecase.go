package usecase

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// OrderItemInput is one line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Price     float64   `json:"price" validate:"required,gt=0"`
}

// CreateOrderInput represents the input for creating an order.
type CreateOrderInput struct {
	CustomerID uuid.UUID        `json:"customerId" validate:"required"`
	Total      float64          `json:"total" validate:"required,gt=0"`
	Status     string           `json:"status,omitempty"`
	Items      []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// ListOrdersInput carries the optional listing predicate.
type ListOrdersInput struct {
	CustomerID *uuid.UUID `json:"customerId" query:"customerId"`
	UserID     *uuid.UUID `json:"userId" query:"userId"`
	Status     string     `json:"status" query:"status"`
	MinTotal   *float64   `json:"minTotal" query:"minTotal"`
	MaxTotal   *float64   `json:"maxTotal" query:"maxTotal"`
	StartDate  *time.Time `json:"startDate" query:"startDate"`
	EndDate    *time.Time `json:"endDate" query:"endDate"`
	Page       query.Pagination
}

// AdvancedOrderQueryInput is the generic filter-list query against orders.
type AdvancedOrderQueryInput struct {
	Filters []query.Filter `json:"filters"`
	Sort    query.Sort
	Page    query.Pagination
}

// OrderUsecase defines the order management use cases.
type OrderUsecase interface {
	// CreateOrder validates the customer and every product, then persists the
	// order with its items as one compound write.
	CreateOrder(ctx context.Context, userID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, input *ListOrdersInput) (*query.Page[*entity.Order], error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error)

	// DeleteOrder removes an order; only cancelled orders are deletable.
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// CustomerTotalPurchases sums a customer's completed orders.
	CustomerTotalPurchases(ctx context.Context, customerID uuid.UUID) (*entity.PurchaseTotals, error)

	// AdvancedQuery runs a validated generic filter list against orders.
	AdvancedQuery(ctx context.Context, input *AdvancedOrderQueryInput) (*query.Page[*entity.Order], error)

	// Report groups orders created inside the window by status.
	Report(ctx context.Context, start, end time.Time) ([]entity.OrderStatusReport, error)
}
