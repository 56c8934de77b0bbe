package repository

import (
	"context"
	"errors"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskListOptions is the conjunctive predicate for task listings. The date
// window applies to the due date.
type TaskListOptions struct {
	AssignedToID      *uuid.UUID
	CreatedByID       *uuid.UUID
	Status            entity.TaskStatus
	Priority          entity.TaskPriority
	DueAfter          *time.Time
	DueBefore         *time.Time
	RelatedEntityType entity.RelatedEntityType
	RelatedEntityID   *uuid.UUID
	Page              query.Pagination
}

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// Create persists a task, optionally connecting existing tags.
	Create(ctx context.Context, task *entity.Task, tagIDs []uuid.UUID) error

	// FindByID retrieves a task with both user relations and tags preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)

	// List returns one page of tasks matching the options plus the total count,
	// newest first.
	List(ctx context.Context, opts TaskListOptions) ([]*entity.Task, int64, error)

	// Update persists changes to an existing task. A non-nil tagIDs replaces the
	// tag set.
	Update(ctx context.Context, task *entity.Task, tagIDs []uuid.UUID) error

	// Delete removes a task row.
	Delete(ctx context.Context, id uuid.UUID) error

	// Productivity groups tasks completed inside the window by assignee with
	// counts and average completion time. Name/Email are left for the caller to
	// resolve.
	Productivity(ctx context.Context, start, end time.Time) ([]entity.AssigneeProductivity, error)
}
