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

type bulkServiceFixture struct {
	service   usecase.BulkUsecase
	tagRepo   *mockRepo.MockTagRepository
	orderRepo *mockRepo.MockOrderRepository
}

func createTestBulkService(_ *testing.T) *bulkServiceFixture {
	tagRepo := &mockRepo.MockTagRepository{}
	orderRepo := &mockRepo.MockOrderRepository{}

	service := NewBulkService(BulkServiceParams{
		TagRepo:   tagRepo,
		OrderRepo: orderRepo,
		Logger:    discardLogger(),
	})

	return &bulkServiceFixture{
		service:   service,
		tagRepo:   tagRepo,
		orderRepo: orderRepo,
	}
}

func TestBulkService_BulkCreateTags_SkipsDuplicates(t *testing.T) {
	t.Parallel()

	fixture := createTestBulkService(t)
	ctx := context.Background()

	// Three requested, one clashes with an existing name.
	fixture.tagRepo.On("BulkCreate", ctx, mock.AnythingOfType("[]*entity.Tag")).
		Return(int64(2), nil)

	result, err := fixture.service.BulkCreateTags(ctx, []usecase.BulkTagInput{
		{Name: "vip", Type: "customer"},
		{Name: "fragile", Type: "product"},
		{Name: "rush"}, // untyped tags are allowed
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Created)
}

func TestBulkService_BulkCreateTags_InvalidTypeFailsWholeBatch(t *testing.T) {
	t.Parallel()

	fixture := createTestBulkService(t)

	_, err := fixture.service.BulkCreateTags(context.Background(), []usecase.BulkTagInput{
		{Name: "vip", Type: "customer"},
		{Name: "weird", Type: "nebula"},
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	fixture.tagRepo.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything)
}

func TestBulkService_BulkCreateTags_EmptyBatch(t *testing.T) {
	t.Parallel()

	fixture := createTestBulkService(t)

	_, err := fixture.service.BulkCreateTags(context.Background(), nil)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
}

func TestBulkService_BulkUpdateOrderStatus_ScopedToUser(t *testing.T) {
	t.Parallel()

	fixture := createTestBulkService(t)
	ctx := context.Background()

	userID := uuid.New()
	orderIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	// One of the three orders belongs to another user and is skipped.
	fixture.orderRepo.On("BulkUpdateStatus", ctx, orderIDs, entity.OrderStatusCompleted, userID).
		Return(int64(2), nil)

	result, err := fixture.service.BulkUpdateOrderStatus(ctx, userID, &usecase.BulkUpdateOrdersInput{
		OrderIDs: orderIDs,
		Status:   "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Updated)
}

func TestBulkService_BulkUpdateOrderStatus_InvalidStatus(t *testing.T) {
	t.Parallel()

	fixture := createTestBulkService(t)

	_, err := fixture.service.BulkUpdateOrderStatus(context.Background(), uuid.New(), &usecase.BulkUpdateOrdersInput{
		OrderIDs: []uuid.UUID{uuid.New()},
		Status:   "teleported",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	fixture.orderRepo.AssertNotCalled(t, "BulkUpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkService_SearchEntitiesByTag(t *testing.T) {
	t.Parallel()

	fixture := createTestBulkService(t)
	ctx := context.Background()
	tagID := uuid.New()
	tag := &entity.Tag{ID: tagID, Name: "vip"}

	fixture.tagRepo.On("FindByName", ctx, "vip").Return(tag, nil)
	fixture.tagRepo.On("RelatedCustomers", ctx, tagID).
		Return([]*entity.Customer{{ID: uuid.New()}}, nil)

	result, err := fixture.service.SearchEntitiesByTag(ctx, "vip", "customers")

	require.NoError(t, err)
	assert.Equal(t, tag, result.Tag)
	assert.Len(t, result.Customers, 1)
	assert.Empty(t, result.Orders)
	assert.Empty(t, result.Products)
}

func TestBulkService_SearchEntitiesByTag_UnknownTag(t *testing.T) {
	t.Parallel()

	fixture := createTestBulkService(t)
	ctx := context.Background()

	fixture.tagRepo.On("FindByName", ctx, "ghost").
		Return(nil, repository.ErrTagNotFound)

	_, err := fixture.service.SearchEntitiesByTag(ctx, "ghost", "orders")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestBulkService_SearchEntitiesByTag_UnknownEntityType(t *testing.T) {
	t.Parallel()

	fixture := createTestBulkService(t)
	ctx := context.Background()

	fixture.tagRepo.On("FindByName", ctx, "vip").
		Return(&entity.Tag{ID: uuid.New(), Name: "vip"}, nil)

	_, err := fixture.service.SearchEntitiesByTag(ctx, "vip", "invoices")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}
