package impl

import (
	"context"
	"testing"

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

type tagServiceFixture struct {
	service usecase.TagUsecase
	tagRepo *mockRepo.MockTagRepository
}

func createTestTagService(_ *testing.T) *tagServiceFixture {
	tagRepo := &mockRepo.MockTagRepository{}

	txManager := &mockRepo.MockTransactionManager{
		Factory: &mockRepo.MockRepositoryFactory{
			TagRepo: tagRepo,
		},
	}

	service := NewTagService(TagServiceParams{
		TxManager: txManager,
		TagRepo:   tagRepo,
		Logger:    discardLogger(),
	})

	return &tagServiceFixture{
		service: service,
		tagRepo: tagRepo,
	}
}

func TestTagService_CreateTag_DuplicateName(t *testing.T) {
	t.Parallel()

	fixture := createTestTagService(t)
	ctx := context.Background()

	fixture.tagRepo.On("Create", ctx, mock.AnythingOfType("*entity.Tag")).
		Return(repository.ErrDuplicateTagName)

	_, err := fixture.service.CreateTag(ctx, &usecase.CreateTagInput{
		Name: "vip",
		Type: "customer",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrDuplicateTagName.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, 409, appErr.HTTPCode())
}

func TestTagService_CreateTag_InvalidType(t *testing.T) {
	t.Parallel()

	fixture := createTestTagService(t)

	_, err := fixture.service.CreateTag(context.Background(), &usecase.CreateTagInput{
		Name: "vip",
		Type: "galaxy",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	fixture.tagRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTagService_CreateTag_TypeOptional(t *testing.T) {
	t.Parallel()

	fixture := createTestTagService(t)
	ctx := context.Background()

	fixture.tagRepo.On("Create", ctx, mock.AnythingOfType("*entity.Tag")).
		Return(nil)

	tag, err := fixture.service.CreateTag(ctx, &usecase.CreateTagInput{
		Name: "follow-up",
	})

	require.NoError(t, err)
	assert.Empty(t, tag.Type)
}

func TestTagService_DeleteTag_BlockedWhileAttached(t *testing.T) {
	t.Parallel()

	fixture := createTestTagService(t)
	ctx := context.Background()
	tagID := uuid.New()

	fixture.tagRepo.On("CountAttachments", ctx, tagID).
		Return(int64(7), nil)

	err := fixture.service.DeleteTag(ctx, tagID)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrTagInUse.ErrorCode(), appErr.ErrorCode())
	fixture.tagRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTagService_DeleteTag_Unattached(t *testing.T) {
	t.Parallel()

	fixture := createTestTagService(t)
	ctx := context.Background()
	tagID := uuid.New()

	fixture.tagRepo.On("CountAttachments", ctx, tagID).Return(int64(0), nil)
	fixture.tagRepo.On("Delete", ctx, tagID).Return(nil)

	err := fixture.service.DeleteTag(ctx, tagID)

	require.NoError(t, err)
	fixture.tagRepo.AssertExpectations(t)
}

func TestTagService_UpdateTag_NotFound(t *testing.T) {
	t.Parallel()

	fixture := createTestTagService(t)
	ctx := context.Background()
	tagID := uuid.New()

	fixture.tagRepo.On("FindByID", ctx, tagID).
		Return(nil, repository.ErrTagNotFound)

	newName := "renamed"
	_, err := fixture.service.UpdateTag(ctx, tagID, &usecase.UpdateTagInput{Name: &newName})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestTagService_ListTags(t *testing.T) {
	t.Parallel()

	fixture := createTestTagService(t)
	ctx := context.Background()

	fixture.tagRepo.On("List", ctx, mock.AnythingOfType("repository.TagListOptions")).
		Return([]*entity.Tag{{Name: "vip"}, {Name: "churn-risk"}}, int64(2), nil)

	page, err := fixture.service.ListTags(ctx, &usecase.ListTagsInput{})

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.PageInfo.TotalPages)
}
