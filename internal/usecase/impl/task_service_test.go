package impl

import (
	"context"
	"testing"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	mockRepo "crm/internal/mocks/repository"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type taskServiceFixture struct {
	service  usecase.TaskUsecase
	taskRepo *mockRepo.MockTaskRepository
	userRepo *mockRepo.MockUserRepository
}

func createTestTaskService(_ *testing.T) *taskServiceFixture {
	taskRepo := &mockRepo.MockTaskRepository{}
	userRepo := &mockRepo.MockUserRepository{}

	service := NewTaskService(TaskServiceParams{
		TaskRepo: taskRepo,
		UserRepo: userRepo,
		Logger:   discardLogger(),
	})

	return &taskServiceFixture{
		service:  service,
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

func TestTaskService_CreateTask_Defaults(t *testing.T) {
	t.Parallel()

	fixture := createTestTaskService(t)
	ctx := context.Background()
	assigneeID := uuid.New()
	creatorID := uuid.New()

	fixture.userRepo.On("FindByID", ctx, assigneeID).
		Return(&entity.User{ID: assigneeID}, nil)
	fixture.taskRepo.On("Create", ctx, mock.AnythingOfType("*entity.Task"), []uuid.UUID(nil)).
		Run(func(args mock.Arguments) {
			task := args.Get(1).(*entity.Task)
			task.ID = uuid.New()
			assert.Equal(t, entity.TaskStatusTodo, task.Status)
			assert.Equal(t, entity.TaskPriorityMedium, task.Priority)
			assert.Equal(t, creatorID, task.CreatedByID)
		}).
		Return(nil)
	fixture.taskRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&entity.Task{Title: "Call back the customer", AssignedToID: assigneeID}, nil)

	task, err := fixture.service.CreateTask(ctx, creatorID, &usecase.CreateTaskInput{
		Title:        "Call back the customer",
		AssignedToID: assigneeID,
	})

	require.NoError(t, err)
	assert.Equal(t, assigneeID, task.AssignedToID)
}

func TestTaskService_CreateTask_UnknownAssignee(t *testing.T) {
	t.Parallel()

	fixture := createTestTaskService(t)
	ctx := context.Background()
	assigneeID := uuid.New()

	fixture.userRepo.On("FindByID", ctx, assigneeID).
		Return(nil, repository.ErrUserNotFound)

	_, err := fixture.service.CreateTask(ctx, uuid.New(), &usecase.CreateTaskInput{
		Title:        "Orphan task",
		AssignedToID: assigneeID,
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrUserNotFound.ErrorCode(), appErr.ErrorCode())
	fixture.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_CreateTask_RelatedEntityPairing(t *testing.T) {
	t.Parallel()

	relatedID := uuid.New()
	relatedType := "customer"
	badType := "invoice"

	tests := []struct {
		name        string
		relatedType *string
		relatedID   *uuid.UUID
		wantErr     bool
	}{
		{name: "both absent", wantErr: false},
		{name: "both present", relatedType: &relatedType, relatedID: &relatedID, wantErr: false},
		{name: "type without id", relatedType: &relatedType, wantErr: true},
		{name: "id without type", relatedID: &relatedID, wantErr: true},
		{name: "unknown type", relatedType: &badType, relatedID: &relatedID, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fixture := createTestTaskService(t)
			ctx := context.Background()
			assigneeID := uuid.New()

			fixture.userRepo.On("FindByID", ctx, assigneeID).
				Return(&entity.User{ID: assigneeID}, nil)
			fixture.taskRepo.On("Create", ctx, mock.AnythingOfType("*entity.Task"), []uuid.UUID(nil)).
				Run(func(args mock.Arguments) {
					task := args.Get(1).(*entity.Task)
					task.ID = uuid.New()
				}).
				Return(nil)
			fixture.taskRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
				Return(&entity.Task{Title: "Linked task"}, nil)

			_, err := fixture.service.CreateTask(ctx, uuid.New(), &usecase.CreateTaskInput{
				Title:             "Linked task",
				AssignedToID:      assigneeID,
				RelatedEntityType: tt.relatedType,
				RelatedEntityID:   tt.relatedID,
			})

			if tt.wantErr {
				var appErr domainerrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTaskService_UpdateTask_StatusTransition(t *testing.T) {
	t.Parallel()

	fixture := createTestTaskService(t)
	ctx := context.Background()
	taskID := uuid.New()

	existing := &entity.Task{
		ID:       taskID,
		Title:    "Prepare demo",
		Status:   entity.TaskStatusInProgress,
		Priority: entity.TaskPriorityHigh,
	}

	fixture.taskRepo.On("FindByID", ctx, taskID).Return(existing, nil)
	fixture.taskRepo.On("Update", ctx, mock.AnythingOfType("*entity.Task"), []uuid.UUID(nil)).
		Return(nil)

	done := "done"
	minutes := 95
	_, err := fixture.service.UpdateTask(ctx, taskID, &usecase.UpdateTaskInput{
		Status:            &done,
		CompletionMinutes: &minutes,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusDone, existing.Status)
	require.NotNil(t, existing.CompletionMinutes)
	assert.Equal(t, 95, *existing.CompletionMinutes)
}

func TestTaskService_TeamProductivity_ResolvesAssignees(t *testing.T) {
	t.Parallel()

	fixture := createTestTaskService(t)
	ctx := context.Background()
	userID := uuid.New()
	goneID := uuid.New()

	fixture.taskRepo.On("Productivity", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]entity.AssigneeProductivity{
			{UserID: userID, CompletedTasks: 5, AvgCompletionMinutes: 42},
			{UserID: goneID, CompletedTasks: 2},
		}, nil)
	fixture.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Closer", Email: "closer@crm.test"}, nil)
	// A deleted assignee keeps the row but stays unresolved.
	fixture.userRepo.On("FindByID", ctx, goneID).
		Return(nil, repository.ErrUserNotFound)

	rows, err := fixture.service.TeamProductivity(ctx, time.Time{}, time.Time{})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Closer", rows[0].Name)
	assert.Empty(t, rows[1].Name)
}

func TestTaskService_ListTasks_InvalidPriority(t *testing.T) {
	t.Parallel()

	fixture := createTestTaskService(t)

	_, err := fixture.service.ListTasks(context.Background(), &usecase.ListTasksInput{
		Priority: "asap",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	fixture.taskRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
