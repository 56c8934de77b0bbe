package usecase

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// CreateCommunicationInput represents the input for logging a communication.
type CreateCommunicationInput struct {
	CustomerID  uuid.UUID   `json:"customerId" validate:"required"`
	Type        string      `json:"type" validate:"required"`
	Content     string      `json:"content" validate:"required"`
	Direction   string      `json:"direction" validate:"required"`
	Status      string      `json:"status,omitempty"`
	ScheduledAt *time.Time  `json:"scheduledAt,omitempty"`
	Duration    *int        `json:"durationMinutes,omitempty" validate:"omitempty,gte=0"`
	TagIDs      []uuid.UUID `json:"tagIds,omitempty"`
}

// ListCommunicationsInput carries the optional listing predicate.
type ListCommunicationsInput struct {
	CustomerID *uuid.UUID `json:"customerId" query:"customerId"`
	UserID     *uuid.UUID `json:"userId" query:"userId"`
	Type       string     `json:"type" query:"type"`
	Direction  string     `json:"direction" query:"direction"`
	Status     string     `json:"status" query:"status"`
	StartDate  *time.Time `json:"startDate" query:"startDate"`
	EndDate    *time.Time `json:"endDate" query:"endDate"`
	Page       query.Pagination
}

// CommunicationReportInput restricts the grouped communication report. A zero
// window defaults to the last 30 days.
type CommunicationReportInput struct {
	Start  time.Time  `json:"startDate" query:"startDate"`
	End    time.Time  `json:"endDate" query:"endDate"`
	UserID *uuid.UUID `json:"userId" query:"userId"`
	Type   string     `json:"type" query:"type"`
}

// CommunicationReport bundles the grouped stats with the top communicators.
type CommunicationReport struct {
	Stats            []entity.CommunicationStat `json:"stats"`
	TopCommunicators []entity.CommunicatorCount `json:"topCommunicators"`
}

// ScheduleFollowUpInput creates a pending outbound child communication.
type ScheduleFollowUpInput struct {
	ParentID    uuid.UUID  `json:"parentId" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// EffectivenessReport aggregates conversion stats per communication type.
type EffectivenessReport struct {
	ByType map[entity.CommunicationType]entity.TypeEffectiveness `json:"byType"`
}

// CommunicationUsecase defines the communication management use cases.
type CommunicationUsecase interface {
	CreateCommunication(ctx context.Context, userID uuid.UUID, input *CreateCommunicationInput) (*entity.Communication, error)
	GetCommunication(ctx context.Context, id uuid.UUID) (*entity.Communication, error)
	ListCommunications(ctx context.Context, input *ListCommunicationsInput) (*query.Page[*entity.Communication], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Communication, error)
	DeleteCommunication(ctx context.Context, id uuid.UUID) error

	AddTag(ctx context.Context, commID, tagID uuid.UUID) error
	RemoveTag(ctx context.Context, commID, tagID uuid.UUID) error

	// CustomerSummary groups one customer's communications by
	// (type, direction, status).
	CustomerSummary(ctx context.Context, customerID uuid.UUID) ([]entity.CommunicationStat, error)

	// Report returns grouped stats plus the top 10 communicators with user
	// details resolved.
	Report(ctx context.Context, input *CommunicationReportInput) (*CommunicationReport, error)

	// ScheduleFollowUp creates a pending outbound communication chained to the
	// parent, inheriting its customer.
	ScheduleFollowUp(ctx context.Context, userID uuid.UUID, input *ScheduleFollowUpInput) (*entity.Communication, error)

	// Effectiveness relates communications to same-window customer orders,
	// aggregated per type. A zero window defaults to the last 90 days.
	Effectiveness(ctx context.Context, start, end time.Time, commType string) (*EffectivenessReport, error)
}
