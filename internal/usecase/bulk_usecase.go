package usecase

import (
	"context"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
)

// BulkTagInput is one tag of a bulk creation batch.
type BulkTagInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// BulkCreateTagsResult reports how many rows the batch actually inserted;
// duplicates inside the batch or against existing rows are skipped.
type BulkCreateTagsResult struct {
	Created int64 `json:"created"`
}

// BulkUpdateOrdersInput updates many orders owned by the acting user at once.
type BulkUpdateOrdersInput struct {
	OrderIDs []uuid.UUID `json:"orderIds" validate:"required,min=1"`
	Status   string      `json:"status" validate:"required"`
}

// BulkUpdateOrdersResult reports the number of rows the statement matched.
type BulkUpdateOrdersResult struct {
	Updated int64 `json:"updated"`
}

// TagSearchResult is the related collection of one tag, keyed by entity type.
// Exactly one of the slices is populated.
type TagSearchResult struct {
	Tag       *entity.Tag        `json:"tag"`
	Orders    []*entity.Order    `json:"orders,omitempty"`
	Products  []*entity.Product  `json:"products,omitempty"`
	Customers []*entity.Customer `json:"customers,omitempty"`
}

// BulkUsecase defines the bulk and cross-entity use cases.
type BulkUsecase interface {
	// BulkCreateTags inserts the batch in one statement, skipping duplicate
	// names, and reports the rows actually inserted.
	BulkCreateTags(ctx context.Context, tags []BulkTagInput) (*BulkCreateTagsResult, error)

	// BulkUpdateOrderStatus updates every listed order owned by userID in a
	// single statement. Unmatched ids are silently skipped.
	BulkUpdateOrderStatus(ctx context.Context, userID uuid.UUID, input *BulkUpdateOrdersInput) (*BulkUpdateOrdersResult, error)

	// SearchEntitiesByTag resolves a tag by its unique name and returns its
	// related collection for entityType in {orders, products, customers}.
	SearchEntitiesByTag(ctx context.Context, tagName, entityType string) (*TagSearchResult, error)
}
