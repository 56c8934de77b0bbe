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

// taskRepository implements the repository.TaskRepository interface.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{
		db: db,
	}
}

// Create persists a task, optionally connecting existing tags.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task, tagIDs []uuid.UUID) error {
	taskM := fromTaskDomain(task)

	if len(tagIDs) > 0 {
		taskM.Tags = tagRefs(tagIDs)
	}

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required task information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	// Update the entity with generated values
	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// FindByID retrieves a task with both user relations and tags preloaded.
func (repo *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel

	if err := repo.db.WithContext(ctx).
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("Tags").
		Where("id = ?", id).
		First(&taskM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by ID")
	}

	return toTaskDomain(&taskM), nil
}

// List returns one page of tasks matching the options plus the total count.
func (repo *taskRepository) List(ctx context.Context, opts repository.TaskListOptions) ([]*entity.Task, int64, error) {
	page := opts.Page.Normalize()

	base := repo.db.WithContext(ctx).Model(&model.TaskModel{})
	if opts.AssignedToID != nil {
		base = base.Where("assigned_to_id = ?", *opts.AssignedToID)
	}
	if opts.CreatedByID != nil {
		base = base.Where("created_by_id = ?", *opts.CreatedByID)
	}
	if opts.Status != "" {
		base = base.Where("status = ?", opts.Status.String())
	}
	if opts.Priority != "" {
		base = base.Where("priority = ?", opts.Priority.String())
	}
	if opts.DueAfter != nil {
		base = base.Where("due_date >= ?", *opts.DueAfter)
	}
	if opts.DueBefore != nil {
		base = base.Where("due_date <= ?", *opts.DueBefore)
	}
	if opts.RelatedEntityType != "" {
		base = base.Where("related_entity_type = ?", opts.RelatedEntityType.String())
	}
	if opts.RelatedEntityID != nil {
		base = base.Where("related_entity_id = ?", *opts.RelatedEntityID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count tasks")
	}

	var taskModels []*model.TaskModel
	if err := base.
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("Tags").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&taskModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list tasks")
	}

	tasks := make([]*entity.Task, 0, len(taskModels))
	for _, taskM := range taskModels {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, total, nil
}

// Update persists changes to an existing task. A non-nil tagIDs replaces the tag set.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task, tagIDs []uuid.UUID) error {
	taskM := fromTaskDomain(task)

	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":               taskM.Title,
			"description":         taskM.Description,
			"assigned_to_id":      taskM.AssignedToID,
			"priority":            taskM.Priority,
			"status":              taskM.Status,
			"due_date":            taskM.DueDate,
			"completion_minutes":  taskM.CompletionMinutes,
			"related_entity_type": taskM.RelatedEntityType,
			"related_entity_id":   taskM.RelatedEntityID,
		})

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(result.Error, "failed to update task")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	if tagIDs != nil {
		ref := model.TaskModel{ID: task.ID}
		if err := repo.db.WithContext(ctx).
			Model(&ref).
			Association("Tags").
			Replace(tagRefs(tagIDs)); err != nil {
			return errors.Wrap(err, "failed to replace task tags")
		}
	}

	return nil
}

// Delete removes a task row and its tag links.
func (repo *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ref := model.TaskModel{ID: id}
	if err := repo.db.WithContext(ctx).
		Model(&ref).
		Association("Tags").
		Clear(); err != nil {
		return errors.Wrap(err, "failed to clear task tags")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TaskModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete task")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// Productivity groups tasks completed inside the window by assignee.
func (repo *taskRepository) Productivity(ctx context.Context, start, end time.Time) ([]entity.AssigneeProductivity, error) {
	var rows []struct {
		UserID               uuid.UUID
		CompletedTasks       int64
		AvgCompletionMinutes float64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Select(`assigned_to_id AS user_id,
			COUNT(*) AS completed_tasks,
			COALESCE(AVG(completion_minutes), 0) AS avg_completion_minutes`).
		Where("status = ? AND updated_at >= ? AND updated_at <= ?", entity.TaskStatusDone.String(), start, end).
		Group("assigned_to_id").
		Order("completed_tasks DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate task productivity")
	}

	report := make([]entity.AssigneeProductivity, 0, len(rows))
	for _, row := range rows {
		report = append(report, entity.AssigneeProductivity{
			UserID:               row.UserID,
			CompletedTasks:       row.CompletedTasks,
			AvgCompletionMinutes: row.AvgCompletionMinutes,
		})
	}

	return report, nil
}

// --- Mapper Functions ---

// toTaskDomain converts a GORM TaskModel to a domain Task entity.
func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	task := &entity.Task{
		ID:                data.ID,
		Title:             data.Title,
		Description:       data.Description,
		AssignedToID:      data.AssignedToID,
		CreatedByID:       data.CreatedByID,
		Priority:          entity.TaskPriority(data.Priority),
		Status:            entity.TaskStatus(data.Status),
		DueDate:           data.DueDate,
		CompletionMinutes: data.CompletionMinutes,
		RelatedEntityID:   data.RelatedEntityID,
		AssignedTo:        toUserDomain(data.AssignedTo),
		CreatedBy:         toUserDomain(data.CreatedBy),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	if data.RelatedEntityType != nil {
		relType := entity.RelatedEntityType(*data.RelatedEntityType)
		task.RelatedEntityType = &relType
	}

	for _, tagM := range data.Tags {
		task.Tags = append(task.Tags, toTagDomain(tagM))
	}

	return task
}

// fromTaskDomain converts a domain Task entity to a GORM TaskModel.
func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	taskM := &model.TaskModel{
		ID:                data.ID,
		Title:             data.Title,
		Description:       data.Description,
		AssignedToID:      data.AssignedToID,
		CreatedByID:       data.CreatedByID,
		Priority:          data.Priority.String(),
		Status:            data.Status.String(),
		DueDate:           data.DueDate,
		CompletionMinutes: data.CompletionMinutes,
		RelatedEntityID:   data.RelatedEntityID,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	if data.RelatedEntityType != nil {
		relType := data.RelatedEntityType.String()
		taskM.RelatedEntityType = &relType
	}

	return taskM
}
