package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductListOptions is the conjunctive predicate for product listings.
type ProductListOptions struct {
	Search   string // case-insensitive substring over name and description
	Status   entity.ProductStatus
	MinPrice *float64
	MaxPrice *float64
	Page     query.Pagination
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// Create persists a new product, optionally connecting existing tags.
	Create(ctx context.Context, product *entity.Product, tagIDs []uuid.UUID) error

	// FindByID retrieves a product with tags and order items preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves the products whose ids are listed; missing ids are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// List returns one page of products matching the options plus the total
	// count. Each product carries its order-item count.
	List(ctx context.Context, opts ProductListOptions) ([]*entity.Product, int64, error)

	// Update persists changes to an existing product. A non-nil tagIDs replaces
	// the tag set.
	Update(ctx context.Context, product *entity.Product, tagIDs []uuid.UUID) error

	// Delete removes a product row. Callers enforce the no-order-references guard.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountOrderReferences counts order items referencing the product; the
	// delete guard.
	CountOrderReferences(ctx context.Context, productID uuid.UUID) (int64, error)

	// AttachTag links an existing tag to a product.
	AttachTag(ctx context.Context, productID, tagID uuid.UUID) error

	// DetachTag unlinks a tag from a product.
	DetachTag(ctx context.Context, productID, tagID uuid.UUID) error
}
