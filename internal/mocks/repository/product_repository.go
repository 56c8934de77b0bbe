package repository

import (
	"context"

	"crm/internal/domain/entity"
	"crm/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a testify mock of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product, tagIDs []uuid.UUID) error {
	args := m.Called(ctx, product, tagIDs)

	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, opts repository.ProductListOptions) ([]*entity.Product, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product, tagIDs []uuid.UUID) error {
	args := m.Called(ctx, product, tagIDs)

	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockProductRepository) CountOrderReferences(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) AttachTag(ctx context.Context, productID, tagID uuid.UUID) error {
	args := m.Called(ctx, productID, tagID)

	return args.Error(0)
}

func (m *MockProductRepository) DetachTag(ctx context.Context, productID, tagID uuid.UUID) error {
	args := m.Called(ctx, productID, tagID)

	return args.Error(0)
}
