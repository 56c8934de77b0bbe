package repository

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/query"
	"crm/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a testify mock of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, opts repository.OrderListOptions) ([]*entity.Order, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockOrderRepository) SumCompletedByCustomer(ctx context.Context, customerID uuid.UUID) (entity.PurchaseTotals, error) {
	args := m.Called(ctx, customerID)

	return args.Get(0).(entity.PurchaseTotals), args.Error(1)
}

func (m *MockOrderRepository) AdvancedQuery(ctx context.Context, filters []query.Filter, sort query.Sort, page query.Pagination) ([]*entity.Order, int64, error) {
	args := m.Called(ctx, filters, sort, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ReportByStatus(ctx context.Context, start, end time.Time) ([]entity.OrderStatusReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.OrderStatusReport), args.Error(1)
}

func (m *MockOrderRepository) BulkUpdateStatus(ctx context.Context, orderIDs []uuid.UUID, status entity.OrderStatus, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orderIDs, status, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Order, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}
