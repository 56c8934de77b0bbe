package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/query"
	"crm/internal/domain/repository"
	mockRepo "crm/internal/mocks/repository"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderServiceFixture struct {
	service      usecase.OrderUsecase
	orderRepo    *mockRepo.MockOrderRepository
	customerRepo *mockRepo.MockCustomerRepository
	productRepo  *mockRepo.MockProductRepository
}

func createTestOrderService(_ *testing.T) *orderServiceFixture {
	orderRepo := &mockRepo.MockOrderRepository{}
	customerRepo := &mockRepo.MockCustomerRepository{}
	productRepo := &mockRepo.MockProductRepository{}

	txManager := &mockRepo.MockTransactionManager{
		Factory: &mockRepo.MockRepositoryFactory{
			OrderRepo:    orderRepo,
			CustomerRepo: customerRepo,
			ProductRepo:  productRepo,
		},
	}

	service := NewOrderService(OrderServiceParams{
		TxManager:    txManager,
		OrderRepo:    orderRepo,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
		Logger:       discardLogger(),
	})

	return &orderServiceFixture{
		service:      service,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Parallel()

	fixture := createTestOrderService(t)
	ctx := context.Background()

	customerID := uuid.New()
	userID := uuid.New()
	productID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	fixture.productRepo.On("FindByIDs", ctx, []uuid.UUID{productID}).
		Return([]*entity.Product{{ID: productID}}, nil)
	fixture.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*entity.Order)
			order.ID = uuid.New()
		}).
		Return(nil)
	fixture.orderRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&entity.Order{CustomerID: customerID, Status: entity.OrderStatusPending}, nil)

	order, err := fixture.service.CreateOrder(ctx, userID, &usecase.CreateOrderInput{
		CustomerID: customerID,
		Total:      99.5,
		Items: []usecase.OrderItemInput{
			{ProductID: productID, Quantity: 2, Price: 49.75},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, customerID, order.CustomerID)
	fixture.orderRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_UnknownProduct(t *testing.T) {
	t.Parallel()

	fixture := createTestOrderService(t)
	ctx := context.Background()

	customerID := uuid.New()
	productID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	// The referenced product does not exist.
	fixture.productRepo.On("FindByIDs", ctx, []uuid.UUID{productID}).
		Return([]*entity.Product{}, nil)

	_, err := fixture.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		CustomerID: customerID,
		Total:      10,
		Items: []usecase.OrderItemInput{
			{ProductID: productID, Quantity: 1, Price: 10},
		},
	})

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProductNotFound.ErrorCode(), appErr.ErrorCode())
	fixture.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_InvalidStatus(t *testing.T) {
	t.Parallel()

	fixture := createTestOrderService(t)

	_, err := fixture.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		CustomerID: uuid.New(),
		Total:      10,
		Status:     "shipped-ish",
		Items: []usecase.OrderItemInput{
			{ProductID: uuid.New(), Quantity: 1, Price: 10},
		},
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

func TestOrderService_DeleteOrder_OnlyCancelled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      entity.OrderStatus
		wantErr     bool
		wantCode    string
		deleteCalls int
	}{
		{
			name:        "cancelled order is deleted",
			status:      entity.OrderStatusCancelled,
			deleteCalls: 1,
		},
		{
			name:     "pending order is rejected",
			status:   entity.OrderStatusPending,
			wantErr:  true,
			wantCode: domainerrors.ErrOrderNotDeletable.ErrorCode(),
		},
		{
			name:     "completed order is rejected",
			status:   entity.OrderStatusCompleted,
			wantErr:  true,
			wantCode: domainerrors.ErrOrderNotDeletable.ErrorCode(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fixture := createTestOrderService(t)
			ctx := context.Background()
			orderID := uuid.New()

			fixture.orderRepo.On("FindByID", ctx, orderID).
				Return(&entity.Order{ID: orderID, Status: tt.status}, nil)
			fixture.orderRepo.On("Delete", ctx, orderID).Return(nil)

			err := fixture.service.DeleteOrder(ctx, orderID)

			if tt.wantErr {
				var appErr domainerrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.ErrorCode())
			} else {
				require.NoError(t, err)
			}
			fixture.orderRepo.AssertNumberOfCalls(t, "Delete", tt.deleteCalls)
		})
	}
}

func TestOrderService_DeleteOrder_NotFound(t *testing.T) {
	t.Parallel()

	fixture := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	fixture.orderRepo.On("FindByID", ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	err := fixture.service.DeleteOrder(ctx, orderID)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrOrderNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestOrderService_AdvancedQuery_RejectsUnknownField(t *testing.T) {
	t.Parallel()

	fixture := createTestOrderService(t)

	_, err := fixture.service.AdvancedQuery(context.Background(), &usecase.AdvancedOrderQueryInput{
		Filters: []query.Filter{
			{Field: "secretColumn", Operator: query.OpEquals, Value: "x"},
		},
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidFilter.ErrorCode(), appErr.ErrorCode())
	fixture.orderRepo.AssertNotCalled(t, "AdvancedQuery", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_AdvancedQuery_RejectsUnknownOperator(t *testing.T) {
	t.Parallel()

	fixture := createTestOrderService(t)

	_, err := fixture.service.AdvancedQuery(context.Background(), &usecase.AdvancedOrderQueryInput{
		Filters: []query.Filter{
			{Field: "status", Operator: "like", Value: "pend"},
		},
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidFilter.ErrorCode(), appErr.ErrorCode())
}

func TestOrderService_AdvancedQuery_Paginates(t *testing.T) {
	t.Parallel()

	fixture := createTestOrderService(t)
	ctx := context.Background()

	filters := []query.Filter{
		{Field: "status", Operator: query.OpEquals, Value: "pending"},
	}
	page := query.Pagination{Page: 2, Limit: 10}

	fixture.orderRepo.On("AdvancedQuery", ctx, filters, query.Sort{}, page).
		Return([]*entity.Order{{ID: uuid.New()}}, int64(25), nil)

	result, err := fixture.service.AdvancedQuery(ctx, &usecase.AdvancedOrderQueryInput{
		Filters: filters,
		Page:    page,
	})

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(25), result.PageInfo.Total)
	assert.Equal(t, 3, result.PageInfo.TotalPages)
}

func TestOrderService_CustomerTotalPurchases(t *testing.T) {
	t.Parallel()

	fixture := createTestOrderService(t)
	ctx := context.Background()
	customerID := uuid.New()

	fixture.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	fixture.orderRepo.On("SumCompletedByCustomer", ctx, customerID).
		Return(entity.PurchaseTotals{TotalPurchases: 540.25, TotalOrders: 4}, nil)

	totals, err := fixture.service.CustomerTotalPurchases(ctx, customerID)

	require.NoError(t, err)
	assert.InDelta(t, 540.25, totals.TotalPurchases, 0.001)
	assert.Equal(t, int64(4), totals.TotalOrders)
}
