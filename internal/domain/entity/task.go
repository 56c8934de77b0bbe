package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// String returns the string representation of the priority.
func (p TaskPriority) String() string {
	return string(p)
}

// IsValid checks if the priority is a valid value.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	default:
		return false
	}
}

// TaskStatus is the board column a task currently sits in.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	default:
		return false
	}
}

// RelatedEntityType is the kind of record a task can optionally point at.
type RelatedEntityType string

const (
	RelatedEntityCustomer      RelatedEntityType = "customer"
	RelatedEntityOrder         RelatedEntityType = "order"
	RelatedEntityCommunication RelatedEntityType = "communication"
)

// String returns the string representation of the related entity type.
func (t RelatedEntityType) String() string {
	return string(t)
}

// IsValid checks if the related entity type is a valid value.
func (t RelatedEntityType) IsValid() bool {
	switch t {
	case RelatedEntityCustomer, RelatedEntityOrder, RelatedEntityCommunication:
		return true
	default:
		return false
	}
}

// Task is a unit of work assigned to a user, optionally pointing at a customer,
// order or communication.
type Task struct {
	ID                uuid.UUID
	Title             string
	Description       string
	AssignedToID      uuid.UUID
	CreatedByID       uuid.UUID
	Priority          TaskPriority
	Status            TaskStatus
	DueDate           *time.Time
	CompletionMinutes *int
	RelatedEntityType *RelatedEntityType
	RelatedEntityID   *uuid.UUID
	AssignedTo        *User
	CreatedBy         *User
	Tags              []*Tag
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AssigneeProductivity is one row of the team productivity report: done tasks
// grouped by assignee with the average completion time. Name and Email are
// resolved after grouping.
type AssigneeProductivity struct {
	UserID               uuid.UUID
	CompletedTasks       int64
	AvgCompletionMinutes float64
	Name                 string
	Email                string
}
