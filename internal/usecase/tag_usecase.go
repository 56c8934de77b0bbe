package usecase

import (
	"context"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// CreateTagInput represents the input for creating a tag.
type CreateTagInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// UpdateTagInput represents a partial update; nil fields stay untouched.
type UpdateTagInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
}

// ListTagsInput carries the optional listing predicate.
type ListTagsInput struct {
	Search string `json:"search" query:"search"`
	Type   string `json:"type" query:"type"`
	Page   query.Pagination
}

// TagUsecase defines the tag management use cases.
type TagUsecase interface {
	CreateTag(ctx context.Context, input *CreateTagInput) (*entity.Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (*entity.Tag, error)
	ListTags(ctx context.Context, input *ListTagsInput) (*query.Page[*entity.Tag], error)
	UpdateTag(ctx context.Context, id uuid.UUID, input *UpdateTagInput) (*entity.Tag, error)

	// DeleteTag removes a tag; blocked while attached to any entity.
	DeleteTag(ctx context.Context, id uuid.UUID) error
}
