package repository

import (
	"context"

	"crm/internal/domain/entity"
	"crm/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTagRepository is a testify mock of repository.TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	args := m.Called(ctx, tag)

	return args.Error(0)
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByName(ctx context.Context, name string) (*entity.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) UpsertByName(ctx context.Context, name string) (*entity.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, opts repository.TagListOptions) ([]*entity.Tag, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Tag), args.Get(1).(int64), args.Error(2)
}

func (m *MockTagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	args := m.Called(ctx, tag)

	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockTagRepository) CountAttachments(ctx context.Context, tagID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tagID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTagRepository) BulkCreate(ctx context.Context, tags []*entity.Tag) (int64, error) {
	args := m.Called(ctx, tags)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTagRepository) RelatedOrders(ctx context.Context, tagID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockTagRepository) RelatedProducts(ctx context.Context, tagID uuid.UUID) ([]*entity.Product, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockTagRepository) RelatedCustomers(ctx context.Context, tagID uuid.UUID) ([]*entity.Customer, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Customer), args.Error(1)
}
