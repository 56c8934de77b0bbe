package usecase

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// CreateTaskInput represents the input for creating a task.
type CreateTaskInput struct {
	Title             string      `json:"title" validate:"required,min=3"`
	Description       string      `json:"description,omitempty"`
	AssignedToID      uuid.UUID   `json:"assignedToId" validate:"required"`
	Priority          string      `json:"priority,omitempty"`
	Status            string      `json:"status,omitempty"`
	DueDate           *time.Time  `json:"dueDate,omitempty"`
	RelatedEntityType *string     `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *uuid.UUID  `json:"relatedEntityId,omitempty"`
	TagIDs            []uuid.UUID `json:"tagIds,omitempty"`
}

// UpdateTaskInput represents a partial update; nil fields stay untouched.
// A non-nil TagIDs replaces the tag set.
type UpdateTaskInput struct {
	Title             *string     `json:"title,omitempty" validate:"omitempty,min=3"`
	Description       *string     `json:"description,omitempty"`
	AssignedToID      *uuid.UUID  `json:"assignedToId,omitempty"`
	Priority          *string     `json:"priority,omitempty"`
	Status            *string     `json:"status,omitempty"`
	DueDate           *time.Time  `json:"dueDate,omitempty"`
	CompletionMinutes *int        `json:"completionMinutes,omitempty" validate:"omitempty,gte=0"`
	RelatedEntityType *string     `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *uuid.UUID  `json:"relatedEntityId,omitempty"`
	TagIDs            []uuid.UUID `json:"tagIds,omitempty"`
}

// ListTasksInput carries the optional listing predicate.
type ListTasksInput struct {
	AssignedToID      *uuid.UUID `json:"assignedToId" query:"assignedToId"`
	CreatedByID       *uuid.UUID `json:"createdById" query:"createdById"`
	Status            string     `json:"status" query:"status"`
	Priority          string     `json:"priority" query:"priority"`
	DueAfter          *time.Time `json:"dueAfter" query:"dueAfter"`
	DueBefore         *time.Time `json:"dueBefore" query:"dueBefore"`
	RelatedEntityType string     `json:"relatedEntityType" query:"relatedEntityType"`
	RelatedEntityID   *uuid.UUID `json:"relatedEntityId" query:"relatedEntityId"`
	Page              query.Pagination
}

// TaskUsecase defines the task management use cases.
type TaskUsecase interface {
	CreateTask(ctx context.Context, createdByID uuid.UUID, input *CreateTaskInput) (*entity.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	ListTasks(ctx context.Context, input *ListTasksInput) (*query.Page[*entity.Task], error)
	UpdateTask(ctx context.Context, id uuid.UUID, input *UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// TeamProductivity groups done tasks by assignee with user details resolved.
	// A zero window defaults to the last 30 days.
	TeamProductivity(ctx context.Context, start, end time.Time) ([]entity.AssigneeProductivity, error)
}
