package postgres

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// communicationRepository implements the repository.CommunicationRepository interface.
type communicationRepository struct {
	db *gorm.DB
}

// NewCommunicationRepository is the constructor for communicationRepository.
func NewCommunicationRepository(db *gorm.DB) repository.CommunicationRepository {
	return &communicationRepository{
		db: db,
	}
}

// Create persists a communication, optionally connecting existing tags.
func (repo *communicationRepository) Create(ctx context.Context, comm *entity.Communication, tagIDs []uuid.UUID) error {
	commM := fromCommunicationDomain(comm)

	if len(tagIDs) > 0 {
		commM.Tags = tagRefs(tagIDs)
	}

	if err := repo.db.WithContext(ctx).Create(commM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCustomerNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required communication information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create communication")
	}

	// Update the entity with generated values
	comm.ID = commM.ID
	comm.CreatedAt = commM.CreatedAt
	comm.UpdatedAt = commM.UpdatedAt

	return nil
}

// FindByID retrieves a communication with customer and tags preloaded.
func (repo *communicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Communication, error) {
	var commM model.CommunicationModel

	if err := repo.db.WithContext(ctx).
		Preload("Customer").
		Preload("Tags").
		Where("id = ?", id).
		First(&commM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommunicationNotFound
		}

		return nil, errors.Wrap(err, "failed to find communication by ID")
	}

	return toCommunicationDomain(&commM), nil
}

// List returns one page of communications matching the options plus the total count.
func (repo *communicationRepository) List(ctx context.Context, opts repository.CommunicationListOptions) ([]*entity.Communication, int64, error) {
	page := opts.Page.Normalize()

	base := repo.db.WithContext(ctx).Model(&model.CommunicationModel{})
	if opts.CustomerID != nil {
		base = base.Where("customer_id = ?", *opts.CustomerID)
	}
	if opts.UserID != nil {
		base = base.Where("user_id = ?", *opts.UserID)
	}
	if opts.Type != "" {
		base = base.Where("type = ?", opts.Type.String())
	}
	if opts.Direction != "" {
		base = base.Where("direction = ?", opts.Direction.String())
	}
	if opts.Status != "" {
		base = base.Where("status = ?", opts.Status.String())
	}
	if opts.StartDate != nil {
		base = base.Where("created_at >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		base = base.Where("created_at <= ?", *opts.EndDate)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count communications")
	}

	var commModels []*model.CommunicationModel
	if err := base.
		Preload("Customer").
		Preload("Tags").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&commModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list communications")
	}

	comms := make([]*entity.Communication, 0, len(commModels))
	for _, commM := range commModels {
		comms = append(comms, toCommunicationDomain(commM))
	}

	return comms, total, nil
}

// UpdateStatus transitions a communication to the given status.
func (repo *communicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CommunicationStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CommunicationModel{}).
		Where("id = ?", id).
		Update("status", status.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update communication status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCommunicationNotFound
	}

	return nil
}

// Delete removes a communication row.
func (repo *communicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CommunicationModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete communication")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCommunicationNotFound
	}

	return nil
}

// AttachTag links an existing tag to a communication. Re-attaching is a no-op.
func (repo *communicationRepository) AttachTag(ctx context.Context, commID, tagID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Exec("INSERT INTO communication_tags (communication_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			commID, tagID).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCommunicationNotFound
		}

		return errors.Wrap(err, "failed to attach tag to communication")
	}

	return nil
}

// DetachTag unlinks a tag from a communication.
func (repo *communicationRepository) DetachTag(ctx context.Context, commID, tagID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Exec("DELETE FROM communication_tags WHERE communication_id = ? AND tag_id = ?",
			commID, tagID).Error
	if err != nil {
		return errors.Wrap(err, "failed to detach tag from communication")
	}

	return nil
}

// SummaryByCustomer groups one customer's communications by (type, direction, status).
func (repo *communicationRepository) SummaryByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CommunicationStat, error) {
	return repo.groupedStats(repo.db.WithContext(ctx).
		Model(&model.CommunicationModel{}).
		Where("customer_id = ?", customerID))
}

// Stats groups communications inside the window by (type, direction, status).
func (repo *communicationRepository) Stats(ctx context.Context, opts repository.CommunicationStatsOptions) ([]entity.CommunicationStat, error) {
	base := repo.db.WithContext(ctx).
		Model(&model.CommunicationModel{}).
		Where("created_at >= ? AND created_at <= ?", opts.Start, opts.End)
	if opts.UserID != nil {
		base = base.Where("user_id = ?", *opts.UserID)
	}
	if opts.Type != "" {
		base = base.Where("type = ?", opts.Type.String())
	}

	return repo.groupedStats(base)
}

func (repo *communicationRepository) groupedStats(base *gorm.DB) ([]entity.CommunicationStat, error) {
	var rows []struct {
		Type               string
		Direction          string
		Status             string
		Count              int64
		AvgDurationMinutes float64
	}

	if err := base.
		Select(`type, direction, status,
			COUNT(*) AS count,
			COALESCE(AVG(duration_minutes), 0) AS avg_duration_minutes`).
		Group("type, direction, status").
		Order("type, direction, status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate communications")
	}

	stats := make([]entity.CommunicationStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, entity.CommunicationStat{
			Type:               entity.CommunicationType(row.Type),
			Direction:          entity.CommunicationDirection(row.Direction),
			Status:             entity.CommunicationStatus(row.Status),
			Count:              row.Count,
			AvgDurationMinutes: row.AvgDurationMinutes,
		})
	}

	return stats, nil
}

// TopCommunicators ranks users by communications logged inside the window.
func (repo *communicationRepository) TopCommunicators(ctx context.Context, opts repository.CommunicationStatsOptions, limit int) ([]entity.CommunicatorCount, error) {
	base := repo.db.WithContext(ctx).
		Model(&model.CommunicationModel{}).
		Where("created_at >= ? AND created_at <= ?", opts.Start, opts.End)
	if opts.Type != "" {
		base = base.Where("type = ?", opts.Type.String())
	}

	var rows []struct {
		UserID uuid.UUID
		Count  int64
	}

	if err := base.
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank communicators")
	}

	counts := make([]entity.CommunicatorCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, entity.CommunicatorCount{
			UserID: row.UserID,
			Count:  row.Count,
		})
	}

	return counts, nil
}

// ConversionStats relates each communication inside the window to the orders its
// customer placed in the same window.
func (repo *communicationRepository) ConversionStats(ctx context.Context, start, end time.Time, commType entity.CommunicationType) ([]entity.ConversionStat, error) {
	base := repo.db.WithContext(ctx).
		Model(&model.CommunicationModel{}).
		Where("communications.created_at >= ? AND communications.created_at <= ?", start, end)
	if commType != "" {
		base = base.Where("communications.type = ?", commType.String())
	}

	var rows []struct {
		CommunicationID uuid.UUID
		Type            string
		CustomerOrders  int64
		OrderValue      float64
	}

	if err := base.
		Select(`communications.id AS communication_id,
			communications.type,
			COUNT(orders.id) AS customer_orders,
			COALESCE(SUM(orders.total), 0) AS order_value`).
		Joins(`LEFT JOIN orders ON orders.customer_id = communications.customer_id
			AND orders.created_at >= ? AND orders.created_at <= ?`, start, end).
		Group("communications.id, communications.type").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate conversion stats")
	}

	stats := make([]entity.ConversionStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, entity.ConversionStat{
			CommunicationID: row.CommunicationID,
			Type:            entity.CommunicationType(row.Type),
			CustomerOrders:  row.CustomerOrders,
			OrderValue:      row.OrderValue,
		})
	}

	return stats, nil
}

// FindRecentByCustomer returns the customer's newest communications.
func (repo *communicationRepository) FindRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Communication, error) {
	var commModels []*model.CommunicationModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&commModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find recent communications by customer")
	}

	comms := make([]*entity.Communication, 0, len(commModels))
	for _, commM := range commModels {
		comms = append(comms, toCommunicationDomain(commM))
	}

	return comms, nil
}

// --- Mapper Functions ---

// toCommunicationDomain converts a GORM CommunicationModel to a domain entity.
func toCommunicationDomain(data *model.CommunicationModel) *entity.Communication {
	if data == nil {
		return nil
	}

	comm := &entity.Communication{
		ID:                    data.ID,
		CustomerID:            data.CustomerID,
		UserID:                data.UserID,
		Type:                  entity.CommunicationType(data.Type),
		Content:               data.Content,
		Direction:             entity.CommunicationDirection(data.Direction),
		Status:                entity.CommunicationStatus(data.Status),
		ScheduledAt:           data.ScheduledAt,
		DurationMinutes:       data.DurationMinutes,
		ParentCommunicationID: data.ParentCommunicationID,
		Customer:              toCustomerDomain(data.Customer),
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}

	for _, tagM := range data.Tags {
		comm.Tags = append(comm.Tags, toTagDomain(tagM))
	}

	return comm
}

// fromCommunicationDomain converts a domain entity to a GORM CommunicationModel.
func fromCommunicationDomain(data *entity.Communication) *model.CommunicationModel {
	if data == nil {
		return nil
	}

	return &model.CommunicationModel{
		ID:                    data.ID,
		CustomerID:            data.CustomerID,
		UserID:                data.UserID,
		Type:                  data.Type.String(),
		Content:               data.Content,
		Direction:             data.Direction.String(),
		Status:                data.Status.String(),
		ScheduledAt:           data.ScheduledAt,
		DurationMinutes:       data.DurationMinutes,
		ParentCommunicationID: data.ParentCommunicationID,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}
