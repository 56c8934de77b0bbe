package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/query"
	"crm/internal/domain/repository"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	topCommunicatorsLimit    = 10
	defaultReportWindow      = 30 * 24 * time.Hour
	defaultConversionsWindow = 90 * 24 * time.Hour
)

// communicationService implements the CommunicationUsecase interface.
type communicationService struct {
	commRepo     repository.CommunicationRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	logger       *slog.Logger
}

// CommunicationServiceParams holds dependencies for communicationService, injected by Fx.
type CommunicationServiceParams struct {
	fx.In

	CommRepo     repository.CommunicationRepository
	CustomerRepo repository.CustomerRepository
	UserRepo     repository.UserRepository
	Logger       *slog.Logger
}

// NewCommunicationService is the constructor for communicationService.
func NewCommunicationService(params CommunicationServiceParams) usecase.CommunicationUsecase {
	return &communicationService{
		commRepo:     params.CommRepo,
		customerRepo: params.CustomerRepo,
		userRepo:     params.UserRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *communicationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCommunication validates the enums and the customer, then logs the
// touchpoint for the acting user.
func (srv *communicationService) CreateCommunication(ctx context.Context, userID uuid.UUID, input *usecase.CreateCommunicationInput) (*entity.Communication, error) {
	commType := entity.CommunicationType(input.Type)
	if !commType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication type: " + input.Type)
	}

	direction := entity.CommunicationDirection(input.Direction)
	if !direction.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication direction: " + input.Direction)
	}

	status := entity.CommunicationStatusPending
	if input.Status != "" {
		status = entity.CommunicationStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication status: " + input.Status)
		}
	}

	if _, err := srv.customerRepo.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to verify communication customer")
	}

	comm := &entity.Communication{
		CustomerID:      input.CustomerID,
		UserID:          userID,
		Type:            commType,
		Content:         input.Content,
		Direction:       direction,
		Status:          status,
		ScheduledAt:     input.ScheduledAt,
		DurationMinutes: input.Duration,
	}

	if err := srv.commRepo.Create(ctx, comm, input.TagIDs); err != nil {
		srv.log(ctx).Error("Failed to create communication", slog.Any("customerID", input.CustomerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create communication")
	}

	srv.log(ctx).Info("Communication logged", slog.Any("communicationID", comm.ID), slog.String("type", commType.String()))

	return srv.GetCommunication(ctx, comm.ID)
}

// GetCommunication retrieves a communication with customer and tags.
func (srv *communicationService) GetCommunication(ctx context.Context, id uuid.UUID) (*entity.Communication, error) {
	comm, err := srv.commRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommunicationNotFound) {
			return nil, domainerrors.ErrCommunicationNotFound
		}

		return nil, errors.Wrap(err, "failed to get communication")
	}

	return comm, nil
}

// ListCommunications returns one page of communications under the supplied predicate.
func (srv *communicationService) ListCommunications(ctx context.Context, input *usecase.ListCommunicationsInput) (*query.Page[*entity.Communication], error) {
	if input.Type != "" && !entity.CommunicationType(input.Type).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication type: " + input.Type)
	}
	if input.Direction != "" && !entity.CommunicationDirection(input.Direction).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication direction: " + input.Direction)
	}
	if input.Status != "" && !entity.CommunicationStatus(input.Status).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication status: " + input.Status)
	}

	comms, total, err := srv.commRepo.List(ctx, repository.CommunicationListOptions{
		CustomerID: input.CustomerID,
		UserID:     input.UserID,
		Type:       entity.CommunicationType(input.Type),
		Direction:  entity.CommunicationDirection(input.Direction),
		Status:     entity.CommunicationStatus(input.Status),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Page:       input.Page,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list communications")
	}

	return &query.Page[*entity.Communication]{
		Items:    comms,
		PageInfo: query.NewPageInfo(input.Page, total),
	}, nil
}

// UpdateStatus transitions a communication to the given status.
func (srv *communicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Communication, error) {
	commStatus := entity.CommunicationStatus(status)
	if !commStatus.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication status: " + status)
	}

	if err := srv.commRepo.UpdateStatus(ctx, id, commStatus); err != nil {
		if errors.Is(err, repository.ErrCommunicationNotFound) {
			return nil, domainerrors.ErrCommunicationNotFound
		}

		return nil, errors.Wrap(err, "failed to update communication status")
	}

	return srv.GetCommunication(ctx, id)
}

// DeleteCommunication removes a communication.
func (srv *communicationService) DeleteCommunication(ctx context.Context, id uuid.UUID) error {
	if err := srv.commRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCommunicationNotFound) {
			return domainerrors.ErrCommunicationNotFound
		}

		return errors.Wrap(err, "failed to delete communication")
	}

	srv.log(ctx).Info("Communication deleted", slog.Any("communicationID", id))

	return nil
}

// AddTag links an existing tag to a communication.
func (srv *communicationService) AddTag(ctx context.Context, commID, tagID uuid.UUID) error {
	if _, err := srv.GetCommunication(ctx, commID); err != nil {
		return err
	}

	if err := srv.commRepo.AttachTag(ctx, commID, tagID); err != nil {
		return errors.Wrap(err, "failed to attach tag to communication")
	}

	return nil
}

// RemoveTag unlinks a tag from a communication.
func (srv *communicationService) RemoveTag(ctx context.Context, commID, tagID uuid.UUID) error {
	if err := srv.commRepo.DetachTag(ctx, commID, tagID); err != nil {
		return errors.Wrap(err, "failed to detach tag from communication")
	}

	return nil
}

// CustomerSummary groups one customer's communications by (type, direction, status).
func (srv *communicationService) CustomerSummary(ctx context.Context, customerID uuid.UUID) ([]entity.CommunicationStat, error) {
	if _, err := srv.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to verify customer")
	}

	stats, err := srv.commRepo.SummaryByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize communications")
	}

	return stats, nil
}

// Report returns grouped communication stats plus the top communicators with
// user details resolved. A zero window defaults to the last 30 days.
func (srv *communicationService) Report(ctx context.Context, input *usecase.CommunicationReportInput) (*usecase.CommunicationReport, error) {
	if input.Type != "" && !entity.CommunicationType(input.Type).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication type: " + input.Type)
	}

	start, end := normalizeWindow(input.Start, input.End, defaultReportWindow)

	opts := repository.CommunicationStatsOptions{
		Start:  start,
		End:    end,
		UserID: input.UserID,
		Type:   entity.CommunicationType(input.Type),
	}

	stats, err := srv.commRepo.Stats(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load communication stats")
	}

	top, err := srv.commRepo.TopCommunicators(ctx, opts, topCommunicatorsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank communicators")
	}

	for i := range top {
		user, err := srv.userRepo.FindByID(ctx, top[i].UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				continue
			}

			return nil, errors.Wrap(err, "failed to resolve communicator")
		}
		top[i].Name = user.Name
		top[i].Email = user.Email
	}

	return &usecase.CommunicationReport{
		Stats:            stats,
		TopCommunicators: top,
	}, nil
}

// ScheduleFollowUp chains a pending outbound communication to an existing one,
// inheriting its customer and type.
func (srv *communicationService) ScheduleFollowUp(ctx context.Context, userID uuid.UUID, input *usecase.ScheduleFollowUpInput) (*entity.Communication, error) {
	parent, err := srv.commRepo.FindByID(ctx, input.ParentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommunicationNotFound) {
			return nil, domainerrors.ErrCommunicationNotFound
		}

		return nil, errors.Wrap(err, "failed to find parent communication")
	}

	followUp := &entity.Communication{
		CustomerID:            parent.CustomerID,
		UserID:                userID,
		Type:                  parent.Type,
		Content:               input.Content,
		Direction:             entity.DirectionOutbound,
		Status:                entity.CommunicationStatusPending,
		ScheduledAt:           input.ScheduledAt,
		ParentCommunicationID: &parent.ID,
	}

	if err := srv.commRepo.Create(ctx, followUp, nil); err != nil {
		return nil, errors.Wrap(err, "failed to schedule follow-up")
	}

	srv.log(ctx).Info("Follow-up scheduled",
		slog.Any("communicationID", followUp.ID), slog.Any("parentID", parent.ID))

	return srv.GetCommunication(ctx, followUp.ID)
}

// Effectiveness relates communications to same-window customer orders and
// aggregates the conversions per type. A zero window defaults to the last 90 days.
func (srv *communicationService) Effectiveness(ctx context.Context, start, end time.Time, commType string) (*usecase.EffectivenessReport, error) {
	if commType != "" && !entity.CommunicationType(commType).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown communication type: " + commType)
	}

	start, end = normalizeWindow(start, end, defaultConversionsWindow)

	stats, err := srv.commRepo.ConversionStats(ctx, start, end, entity.CommunicationType(commType))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversion stats")
	}

	report := &usecase.EffectivenessReport{
		ByType: make(map[entity.CommunicationType]entity.TypeEffectiveness),
	}
	for _, stat := range stats {
		bucket := report.ByType[stat.Type]
		bucket.TotalCommunications++
		if stat.CustomerOrders > 0 {
			bucket.TotalConversions++
			bucket.TotalOrderValue += stat.OrderValue
		}
		report.ByType[stat.Type] = bucket
	}

	return report, nil
}

// normalizeWindow fills a zero start or end so every report runs against a
// bounded window ending now.
func normalizeWindow(start, end time.Time, span time.Duration) (time.Time, time.Time) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.Add(-span)
	}

	return start, end
}
