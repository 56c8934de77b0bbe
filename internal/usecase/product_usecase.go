package usecase

import (
	"context"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// CreateProductInput represents the input for creating a product.
type CreateProductInput struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description,omitempty"`
	Price       float64     `json:"price" validate:"required,gt=0"`
	Status      string      `json:"status,omitempty"`
	TagIDs      []uuid.UUID `json:"tagIds,omitempty"`
}

// UpdateProductInput represents a partial update; nil fields stay untouched.
// A non-nil TagIDs replaces the tag set.
type UpdateProductInput struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Price       *float64    `json:"price,omitempty" validate:"omitempty,gt=0"`
	Status      *string     `json:"status,omitempty"`
	TagIDs      []uuid.UUID `json:"tagIds,omitempty"`
}

// ListProductsInput carries the optional listing predicate.
type ListProductsInput struct {
	Search   string   `json:"search" query:"search"`
	Status   string   `json:"status" query:"status"`
	MinPrice *float64 `json:"minPrice" query:"minPrice"`
	MaxPrice *float64 `json:"maxPrice" query:"maxPrice"`
	Page     query.Pagination
}

// ProductUsecase defines the product management use cases.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, input *ListProductsInput) (*query.Page[*entity.Product], error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product; blocked while any order item references it.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	AddTag(ctx context.Context, productID, tagID uuid.UUID) error
	RemoveTag(ctx context.Context, productID, tagID uuid.UUID) error
}
