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

const defaultProductivityWindow = 30 * 24 * time.Hour

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// TaskServiceParams holds dependencies for taskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTask validates the assignee and the enums, then persists the task for
// the acting user.
func (srv *taskService) CreateTask(ctx context.Context, createdByID uuid.UUID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	priority := entity.TaskPriorityMedium
	if input.Priority != "" {
		priority = entity.TaskPriority(input.Priority)
		if !priority.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown task priority: " + input.Priority)
		}
	}

	status := entity.TaskStatusTodo
	if input.Status != "" {
		status = entity.TaskStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown task status: " + input.Status)
		}
	}

	relatedType, err := resolveRelatedEntity(input.RelatedEntityType, input.RelatedEntityID)
	if err != nil {
		return nil, err
	}

	if _, err := srv.userRepo.FindByID(ctx, input.AssignedToID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WithDetails("assignee does not exist")
		}

		return nil, errors.Wrap(err, "failed to verify task assignee")
	}

	task := &entity.Task{
		Title:             input.Title,
		Description:       input.Description,
		AssignedToID:      input.AssignedToID,
		CreatedByID:       createdByID,
		Priority:          priority,
		Status:            status,
		DueDate:           input.DueDate,
		RelatedEntityType: relatedType,
		RelatedEntityID:   input.RelatedEntityID,
	}

	if err := srv.taskRepo.Create(ctx, task, input.TagIDs); err != nil {
		srv.log(ctx).Error("Failed to create task", slog.String("title", input.Title), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Info("Task created", slog.Any("taskID", task.ID), slog.Any("assignedToID", task.AssignedToID))

	return srv.GetTask(ctx, task.ID)
}

// GetTask retrieves a task with users and tags.
func (srv *taskService) GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to get task")
	}

	return task, nil
}

// ListTasks returns one page of tasks under the supplied predicate.
func (srv *taskService) ListTasks(ctx context.Context, input *usecase.ListTasksInput) (*query.Page[*entity.Task], error) {
	if input.Status != "" && !entity.TaskStatus(input.Status).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown task status: " + input.Status)
	}
	if input.Priority != "" && !entity.TaskPriority(input.Priority).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown task priority: " + input.Priority)
	}
	if input.RelatedEntityType != "" && !entity.RelatedEntityType(input.RelatedEntityType).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown related entity type: " + input.RelatedEntityType)
	}

	tasks, total, err := srv.taskRepo.List(ctx, repository.TaskListOptions{
		AssignedToID:      input.AssignedToID,
		CreatedByID:       input.CreatedByID,
		Status:            entity.TaskStatus(input.Status),
		Priority:          entity.TaskPriority(input.Priority),
		DueAfter:          input.DueAfter,
		DueBefore:         input.DueBefore,
		RelatedEntityType: entity.RelatedEntityType(input.RelatedEntityType),
		RelatedEntityID:   input.RelatedEntityID,
		Page:              input.Page,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return &query.Page[*entity.Task]{
		Items:    tasks,
		PageInfo: query.NewPageInfo(input.Page, total),
	}, nil
}

// UpdateTask applies a partial update to an existing task.
func (srv *taskService) UpdateTask(ctx context.Context, id uuid.UUID, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task for update")
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.AssignedToID != nil {
		if _, err := srv.userRepo.FindByID(ctx, *input.AssignedToID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, domainerrors.ErrUserNotFound.WithDetails("assignee does not exist")
			}

			return nil, errors.Wrap(err, "failed to verify task assignee")
		}
		task.AssignedToID = *input.AssignedToID
	}
	if input.Priority != nil {
		priority := entity.TaskPriority(*input.Priority)
		if !priority.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown task priority: " + *input.Priority)
		}
		task.Priority = priority
	}
	if input.Status != nil {
		status := entity.TaskStatus(*input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown task status: " + *input.Status)
		}
		task.Status = status
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.CompletionMinutes != nil {
		task.CompletionMinutes = input.CompletionMinutes
	}
	if input.RelatedEntityType != nil || input.RelatedEntityID != nil {
		relatedType, err := resolveRelatedEntity(input.RelatedEntityType, input.RelatedEntityID)
		if err != nil {
			return nil, err
		}
		task.RelatedEntityType = relatedType
		task.RelatedEntityID = input.RelatedEntityID
	}

	if err := srv.taskRepo.Update(ctx, task, input.TagIDs); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	return srv.GetTask(ctx, id)
}

// DeleteTask removes a task.
func (srv *taskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := srv.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound
		}

		return errors.Wrap(err, "failed to delete task")
	}

	srv.log(ctx).Info("Task deleted", slog.Any("taskID", id))

	return nil
}

// TeamProductivity groups done tasks by assignee and resolves the user details.
// A zero window defaults to the last 30 days.
func (srv *taskService) TeamProductivity(ctx context.Context, start, end time.Time) ([]entity.AssigneeProductivity, error) {
	start, end = normalizeWindow(start, end, defaultProductivityWindow)

	rows, err := srv.taskRepo.Productivity(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load productivity report")
	}

	for i := range rows {
		user, err := srv.userRepo.FindByID(ctx, rows[i].UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				continue
			}

			return nil, errors.Wrap(err, "failed to resolve assignee")
		}
		rows[i].Name = user.Name
		rows[i].Email = user.Email
	}

	return rows, nil
}

// resolveRelatedEntity enforces that type and id arrive as a pair and the type
// names a known kind of record.
func resolveRelatedEntity(relatedType *string, relatedID *uuid.UUID) (*entity.RelatedEntityType, error) {
	if relatedType == nil && relatedID == nil {
		return nil, nil
	}
	if relatedType == nil || relatedID == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("relatedEntityType and relatedEntityId must be provided together")
	}

	kind := entity.RelatedEntityType(*relatedType)
	if !kind.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown related entity type: " + *relatedType)
	}

	return &kind, nil
}
