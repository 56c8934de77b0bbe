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

type customerServiceFixture struct {
	service      usecase.CustomerUsecase
	customerRepo *mockRepo.MockCustomerRepository
	orderRepo    *mockRepo.MockOrderRepository
	commRepo     *mockRepo.MockCommunicationRepository
	tagRepo      *mockRepo.MockTagRepository
}

func createTestCustomerService(_ *testing.T) *customerServiceFixture {
	customerRepo := &mockRepo.MockCustomerRepository{}
	orderRepo := &mockRepo.MockOrderRepository{}
	commRepo := &mockRepo.MockCommunicationRepository{}
	tagRepo := &mockRepo.MockTagRepository{}

	service := NewCustomerService(CustomerServiceParams{
		CustomerRepo: customerRepo,
		OrderRepo:    orderRepo,
		CommRepo:     commRepo,
		TagRepo:      tagRepo,
		Logger:       discardLogger(),
	})

	return &customerServiceFixture{
		service:      service,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		commRepo:     commRepo,
		tagRepo:      tagRepo,
	}
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	t.Parallel()

	fixture := createTestCustomerService(t)
	ctx := context.Background()

	fixture.customerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).
		Return(nil)

	customer, err := fixture.service.CreateCustomer(ctx, &usecase.CreateCustomerInput{
		Name:  "Acme Corp",
		Email: "hello@acme.test",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.CustomerStatusActive, customer.Status)
	assert.Equal(t, entity.CustomerTypeRegular, customer.Type)
}

func TestCustomerService_CreateCustomer_DuplicateEmail(t *testing.T) {
	t.Parallel()

	fixture := createTestCustomerService(t)
	ctx := context.Background()

	fixture.customerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).
		Return(repository.ErrDuplicateEmail)

	_, err := fixture.service.CreateCustomer(ctx, &usecase.CreateCustomerInput{
		Name:  "Acme Corp",
		Email: "taken@acme.test",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrDuplicateEmail.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, 409, appErr.HTTPCode())
}

func TestCustomerService_CreateCustomer_InvalidEnums(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status string
		ctype  string
	}{
		{name: "bad status", status: "zombie"},
		{name: "bad type", ctype: "platinum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fixture := createTestCustomerService(t)

			_, err := fixture.service.CreateCustomer(context.Background(), &usecase.CreateCustomerInput{
				Name:   "Acme Corp",
				Email:  "hello@acme.test",
				Status: tt.status,
				Type:   tt.ctype,
			})

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
			fixture.customerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCustomerService_UpdateCustomer_PartialFields(t *testing.T) {
	t.Parallel()

	fixture := createTestCustomerService(t)
	ctx := context.Background()
	customerID := uuid.New()

	existing := &entity.Customer{
		ID:     customerID,
		Name:   "Old Name",
		Email:  "old@acme.test",
		Phone:  "555-0100",
		Status: entity.CustomerStatusActive,
		Type:   entity.CustomerTypeRegular,
	}

	fixture.customerRepo.On("FindByID", ctx, customerID).Return(existing, nil)
	fixture.customerRepo.On("Update", ctx, mock.AnythingOfType("*entity.Customer")).Return(nil)

	newName := "New Name"
	updated, err := fixture.service.UpdateCustomer(ctx, customerID, &usecase.UpdateCustomerInput{
		Name: &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	// Untouched fields survive the partial update.
	assert.Equal(t, "old@acme.test", updated.Email)
	assert.Equal(t, "555-0100", updated.Phone)
}

func TestCustomerService_GetCustomer_NotFound(t *testing.T) {
	t.Parallel()

	fixture := createTestCustomerService(t)
	ctx := context.Background()
	customerID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(nil, repository.ErrCustomerNotFound)

	_, err := fixture.service.GetCustomer(ctx, customerID)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestCustomerService_AddTag_UpsertsByName(t *testing.T) {
	t.Parallel()

	fixture := createTestCustomerService(t)
	ctx := context.Background()
	customerID := uuid.New()
	tagID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	fixture.tagRepo.On("UpsertByName", ctx, "vip").
		Return(&entity.Tag{ID: tagID, Name: "vip"}, nil)
	fixture.customerRepo.On("AttachTag", ctx, customerID, tagID).Return(nil)

	tag, err := fixture.service.AddTag(ctx, customerID, "vip")

	require.NoError(t, err)
	assert.Equal(t, tagID, tag.ID)
	fixture.customerRepo.AssertExpectations(t)
}

func TestCustomerService_Analytics(t *testing.T) {
	t.Parallel()

	fixture := createTestCustomerService(t)
	ctx := context.Background()

	fixture.customerRepo.On("Segments", ctx).Return([]entity.CustomerSegment{
		{Type: entity.CustomerTypeVIP, Status: entity.CustomerStatusActive, CustomerCount: 3, Revenue: 1200},
	}, nil)
	fixture.customerRepo.On("TopByLifetimeValue", ctx, topCustomersLimit).
		Return([]entity.CustomerValue{
			{CustomerID: uuid.New(), Name: "Big Spender", LifetimeValue: 900},
		}, nil)

	analytics, err := fixture.service.Analytics(ctx)

	require.NoError(t, err)
	assert.Len(t, analytics.Segments, 1)
	assert.Len(t, analytics.TopCustomers, 1)
}

func TestCustomerService_GetInteractionHistory(t *testing.T) {
	t.Parallel()

	fixture := createTestCustomerService(t)
	ctx := context.Background()
	customerID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	fixture.commRepo.On("FindRecentByCustomer", ctx, customerID, interactionHistoryComms).
		Return([]*entity.Communication{{ID: uuid.New()}}, nil)
	fixture.orderRepo.On("FindRecentByCustomer", ctx, customerID, interactionHistoryOrders).
		Return([]*entity.Order{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	history, err := fixture.service.GetInteractionHistory(ctx, customerID)

	require.NoError(t, err)
	assert.Len(t, history.Communications, 1)
	assert.Len(t, history.Orders, 2)
}
