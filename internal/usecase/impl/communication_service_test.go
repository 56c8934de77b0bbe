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

type communicationServiceFixture struct {
	service      usecase.CommunicationUsecase
	commRepo     *mockRepo.MockCommunicationRepository
	customerRepo *mockRepo.MockCustomerRepository
	userRepo     *mockRepo.MockUserRepository
}

func createTestCommunicationService(_ *testing.T) *communicationServiceFixture {
	commRepo := &mockRepo.MockCommunicationRepository{}
	customerRepo := &mockRepo.MockCustomerRepository{}
	userRepo := &mockRepo.MockUserRepository{}

	service := NewCommunicationService(CommunicationServiceParams{
		CommRepo:     commRepo,
		CustomerRepo: customerRepo,
		UserRepo:     userRepo,
		Logger:       discardLogger(),
	})

	return &communicationServiceFixture{
		service:      service,
		commRepo:     commRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

func TestCommunicationService_CreateCommunication(t *testing.T) {
	t.Parallel()

	fixture := createTestCommunicationService(t)
	ctx := context.Background()
	customerID := uuid.New()
	userID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	fixture.commRepo.On("Create", ctx, mock.AnythingOfType("*entity.Communication"), []uuid.UUID(nil)).
		Run(func(args mock.Arguments) {
			comm := args.Get(1).(*entity.Communication)
			comm.ID = uuid.New()
			// Status defaults to pending when the caller omits it.
			assert.Equal(t, entity.CommunicationStatusPending, comm.Status)
		}).
		Return(nil)
	fixture.commRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&entity.Communication{CustomerID: customerID, UserID: userID}, nil)

	comm, err := fixture.service.CreateCommunication(ctx, userID, &usecase.CreateCommunicationInput{
		CustomerID: customerID,
		Type:       "phone",
		Content:    "Quarterly check-in call",
		Direction:  "outbound",
	})

	require.NoError(t, err)
	assert.Equal(t, customerID, comm.CustomerID)
}

func TestCommunicationService_CreateCommunication_InvalidEnums(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		commType  string
		direction string
		status    string
	}{
		{name: "bad type", commType: "pigeon", direction: "outbound"},
		{name: "bad direction", commType: "email", direction: "sideways"},
		{name: "bad status", commType: "email", direction: "inbound", status: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fixture := createTestCommunicationService(t)

			_, err := fixture.service.CreateCommunication(context.Background(), uuid.New(), &usecase.CreateCommunicationInput{
				CustomerID: uuid.New(),
				Type:       tt.commType,
				Content:    "hello",
				Direction:  tt.direction,
				Status:     tt.status,
			})

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
			fixture.commRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCommunicationService_CreateCommunication_UnknownCustomer(t *testing.T) {
	t.Parallel()

	fixture := createTestCommunicationService(t)
	ctx := context.Background()
	customerID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(nil, repository.ErrCustomerNotFound)

	_, err := fixture.service.CreateCommunication(ctx, uuid.New(), &usecase.CreateCommunicationInput{
		CustomerID: customerID,
		Type:       "email",
		Content:    "hello",
		Direction:  "outbound",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}

func TestCommunicationService_ScheduleFollowUp(t *testing.T) {
	t.Parallel()

	fixture := createTestCommunicationService(t)
	ctx := context.Background()

	parentID := uuid.New()
	customerID := uuid.New()
	userID := uuid.New()
	scheduledAt := time.Now().Add(48 * time.Hour)

	fixture.commRepo.On("FindByID", ctx, parentID).
		Return(&entity.Communication{
			ID:         parentID,
			CustomerID: customerID,
			Type:       entity.CommunicationTypePhone,
		}, nil).Once()
	fixture.commRepo.On("Create", ctx, mock.AnythingOfType("*entity.Communication"), []uuid.UUID(nil)).
		Run(func(args mock.Arguments) {
			followUp := args.Get(1).(*entity.Communication)
			followUp.ID = uuid.New()

			// The follow-up inherits customer and type, chains to the parent
			// and always starts as a pending outbound touchpoint.
			assert.Equal(t, customerID, followUp.CustomerID)
			assert.Equal(t, entity.CommunicationTypePhone, followUp.Type)
			assert.Equal(t, entity.DirectionOutbound, followUp.Direction)
			assert.Equal(t, entity.CommunicationStatusPending, followUp.Status)
			require.NotNil(t, followUp.ParentCommunicationID)
			assert.Equal(t, parentID, *followUp.ParentCommunicationID)
		}).
		Return(nil)
	fixture.commRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&entity.Communication{CustomerID: customerID, ParentCommunicationID: &parentID}, nil)

	followUp, err := fixture.service.ScheduleFollowUp(ctx, userID, &usecase.ScheduleFollowUpInput{
		ParentID:    parentID,
		Content:     "Follow up on pricing discussion",
		ScheduledAt: &scheduledAt,
	})

	require.NoError(t, err)
	require.NotNil(t, followUp.ParentCommunicationID)
	assert.Equal(t, parentID, *followUp.ParentCommunicationID)
}

func TestCommunicationService_ScheduleFollowUp_UnknownParent(t *testing.T) {
	t.Parallel()

	fixture := createTestCommunicationService(t)
	ctx := context.Background()
	parentID := uuid.New()

	fixture.commRepo.On("FindByID", ctx, parentID).
		Return(nil, repository.ErrCommunicationNotFound)

	_, err := fixture.service.ScheduleFollowUp(ctx, uuid.New(), &usecase.ScheduleFollowUpInput{
		ParentID: parentID,
		Content:  "ping",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrCommunicationNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestCommunicationService_Report_ResolvesCommunicators(t *testing.T) {
	t.Parallel()

	fixture := createTestCommunicationService(t)
	ctx := context.Background()
	userID := uuid.New()

	fixture.commRepo.On("Stats", ctx, mock.AnythingOfType("repository.CommunicationStatsOptions")).
		Return([]entity.CommunicationStat{
			{Type: entity.CommunicationTypeEmail, Direction: entity.DirectionOutbound, Status: entity.CommunicationStatusCompleted, Count: 12},
		}, nil)
	fixture.commRepo.On("TopCommunicators", ctx, mock.AnythingOfType("repository.CommunicationStatsOptions"), topCommunicatorsLimit).
		Return([]entity.CommunicatorCount{{UserID: userID, Count: 12}}, nil)
	fixture.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Busy Rep", Email: "rep@crm.test"}, nil)

	report, err := fixture.service.Report(ctx, &usecase.CommunicationReportInput{})

	require.NoError(t, err)
	require.Len(t, report.TopCommunicators, 1)
	assert.Equal(t, "Busy Rep", report.TopCommunicators[0].Name)
	assert.Equal(t, "rep@crm.test", report.TopCommunicators[0].Email)
}

func TestCommunicationService_Report_DefaultsWindow(t *testing.T) {
	t.Parallel()

	fixture := createTestCommunicationService(t)
	ctx := context.Background()

	fixture.commRepo.On("Stats", ctx, mock.MatchedBy(func(opts repository.CommunicationStatsOptions) bool {
		span := opts.End.Sub(opts.Start)

		return span > 29*24*time.Hour && span < 31*24*time.Hour
	})).Return([]entity.CommunicationStat{}, nil)
	fixture.commRepo.On("TopCommunicators", ctx, mock.Anything, topCommunicatorsLimit).
		Return([]entity.CommunicatorCount{}, nil)

	_, err := fixture.service.Report(ctx, &usecase.CommunicationReportInput{})

	require.NoError(t, err)
	fixture.commRepo.AssertExpectations(t)
}

func TestCommunicationService_Effectiveness_AggregatesByType(t *testing.T) {
	t.Parallel()

	fixture := createTestCommunicationService(t)
	ctx := context.Background()

	fixture.commRepo.On("ConversionStats", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), entity.CommunicationType("")).
		Return([]entity.ConversionStat{
			{CommunicationID: uuid.New(), Type: entity.CommunicationTypeEmail, CustomerOrders: 2, OrderValue: 150},
			{CommunicationID: uuid.New(), Type: entity.CommunicationTypeEmail, CustomerOrders: 0},
			{CommunicationID: uuid.New(), Type: entity.CommunicationTypePhone, CustomerOrders: 1, OrderValue: 80},
		}, nil)

	report, err := fixture.service.Effectiveness(ctx, time.Time{}, time.Time{}, "")

	require.NoError(t, err)

	email := report.ByType[entity.CommunicationTypeEmail]
	assert.Equal(t, int64(2), email.TotalCommunications)
	assert.Equal(t, int64(1), email.TotalConversions)
	assert.InDelta(t, 150, email.TotalOrderValue, 0.001)

	phone := report.ByType[entity.CommunicationTypePhone]
	assert.Equal(t, int64(1), phone.TotalCommunications)
	assert.Equal(t, int64(1), phone.TotalConversions)
}

func TestCommunicationService_CustomerSummary_UnknownCustomer(t *testing.T) {
	t.Parallel()

	fixture := createTestCommunicationService(t)
	ctx := context.Background()
	customerID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(nil, repository.ErrCustomerNotFound)

	_, err := fixture.service.CustomerSummary(ctx, customerID)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode())
}
