package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// Sentinel errors for tag persistence.
var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrDuplicateTagName = errors.New("tag name already exists")
)

// TagListOptions is the conjunctive predicate for tag listings.
type TagListOptions struct {
	Search string // case-insensitive substring over name and description
	Type   entity.TagType
	Page   query.Pagination
}

// TagRepository defines the standard operations for tag persistence, including
// the cross-entity lookups used by the bulk service.
type TagRepository interface {
	// Create persists a new tag. A duplicate name yields ErrDuplicateTagName.
	Create(ctx context.Context, tag *entity.Tag) error

	// FindByID retrieves a tag with all related collections preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)

	// FindByName retrieves a tag by its unique name, without relations.
	FindByName(ctx context.Context, name string) (*entity.Tag, error)

	// UpsertByName returns the tag with the given name, creating it when absent.
	UpsertByName(ctx context.Context, name string) (*entity.Tag, error)

	// List returns one page of tags matching the options plus the total count.
	List(ctx context.Context, opts TagListOptions) ([]*entity.Tag, int64, error)

	// Update persists changes to an existing tag.
	Update(ctx context.Context, tag *entity.Tag) error

	// Delete removes a tag row. Callers enforce the zero-attachments guard.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountAttachments totals the tag's links across products, customers,
	// communications and orders; the delete guard.
	CountAttachments(ctx context.Context, tagID uuid.UUID) (int64, error)

	// BulkCreate inserts many tags in one statement, skipping rows that would
	// violate the unique name constraint, and reports how many were inserted.
	BulkCreate(ctx context.Context, tags []*entity.Tag) (int64, error)

	// RelatedOrders returns the orders carrying the tag.
	RelatedOrders(ctx context.Context, tagID uuid.UUID) ([]*entity.Order, error)

	// RelatedProducts returns the products carrying the tag.
	RelatedProducts(ctx context.Context, tagID uuid.UUID) ([]*entity.Product, error)

	// RelatedCustomers returns the customers carrying the tag.
	RelatedCustomers(ctx context.Context, tagID uuid.UUID) ([]*entity.Customer, error)
}
