package repository

import (
	"context"
	"errors"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"

	"github.com/google/uuid"
)

// ErrCommunicationNotFound is returned when a communication is not found.
var ErrCommunicationNotFound = errors.New("communication not found")

// CommunicationListOptions is the conjunctive predicate for communication
// listings.
type CommunicationListOptions struct {
	CustomerID *uuid.UUID
	UserID     *uuid.UUID
	Type       entity.CommunicationType
	Direction  entity.CommunicationDirection
	Status     entity.CommunicationStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Page       query.Pagination
}

// CommunicationStatsOptions restricts the grouped statistics queries. Zero
// fields contribute no constraint; Start/End are always set by the caller.
type CommunicationStatsOptions struct {
	Start  time.Time
	End    time.Time
	UserID *uuid.UUID
	Type   entity.CommunicationType
}

// CommunicationRepository defines the standard operations for communication
// persistence and its reporting queries.
type CommunicationRepository interface {
	// Create persists a communication, optionally connecting existing tags.
	Create(ctx context.Context, comm *entity.Communication, tagIDs []uuid.UUID) error

	// FindByID retrieves a communication with customer and tags preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Communication, error)

	// List returns one page of communications matching the options plus the
	// total count, newest first.
	List(ctx context.Context, opts CommunicationListOptions) ([]*entity.Communication, int64, error)

	// UpdateStatus transitions a communication to the given status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CommunicationStatus) error

	// Delete removes a communication row.
	Delete(ctx context.Context, id uuid.UUID) error

	// AttachTag links an existing tag to a communication.
	AttachTag(ctx context.Context, commID, tagID uuid.UUID) error

	// DetachTag unlinks a tag from a communication.
	DetachTag(ctx context.Context, commID, tagID uuid.UUID) error

	// SummaryByCustomer groups one customer's communications by
	// (type, direction, status) with counts.
	SummaryByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CommunicationStat, error)

	// Stats groups communications inside the window by (type, direction, status)
	// with counts and average duration.
	Stats(ctx context.Context, opts CommunicationStatsOptions) ([]entity.CommunicationStat, error)

	// TopCommunicators ranks users by communications logged inside the window,
	// descending, truncated to limit. Name/Email are left for the caller to
	// resolve.
	TopCommunicators(ctx context.Context, opts CommunicationStatsOptions, limit int) ([]entity.CommunicatorCount, error)

	// ConversionStats relates each communication inside the window to the orders
	// its customer placed in the same window.
	ConversionStats(ctx context.Context, start, end time.Time, commType entity.CommunicationType) ([]entity.ConversionStat, error)

	// FindRecentByCustomer returns the customer's newest communications,
	// truncated to limit.
	FindRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Communication, error)
}
