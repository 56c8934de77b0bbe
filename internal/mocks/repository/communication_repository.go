package repository

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCommunicationRepository is a testify mock of repository.CommunicationRepository.
type MockCommunicationRepository struct {
	mock.Mock
}

func (m *MockCommunicationRepository) Create(ctx context.Context, comm *entity.Communication, tagIDs []uuid.UUID) error {
	args := m.Called(ctx, comm, tagIDs)

	return args.Error(0)
}

func (m *MockCommunicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Communication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) List(ctx context.Context, opts repository.CommunicationListOptions) ([]*entity.Communication, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Communication), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommunicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CommunicationStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

func (m *MockCommunicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockCommunicationRepository) AttachTag(ctx context.Context, commID, tagID uuid.UUID) error {
	args := m.Called(ctx, commID, tagID)

	return args.Error(0)
}

func (m *MockCommunicationRepository) DetachTag(ctx context.Context, commID, tagID uuid.UUID) error {
	args := m.Called(ctx, commID, tagID)

	return args.Error(0)
}

func (m *MockCommunicationRepository) SummaryByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CommunicationStat, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.CommunicationStat), args.Error(1)
}

func (m *MockCommunicationRepository) Stats(ctx context.Context, opts repository.CommunicationStatsOptions) ([]entity.CommunicationStat, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.CommunicationStat), args.Error(1)
}

func (m *MockCommunicationRepository) TopCommunicators(ctx context.Context, opts repository.CommunicationStatsOptions, limit int) ([]entity.CommunicatorCount, error) {
	args := m.Called(ctx, opts, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.CommunicatorCount), args.Error(1)
}

func (m *MockCommunicationRepository) ConversionStats(ctx context.Context, start, end time.Time, commType entity.CommunicationType) ([]entity.ConversionStat, error) {
	args := m.Called(ctx, start, end, commType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.ConversionStat), args.Error(1)
}

func (m *MockCommunicationRepository) FindRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Communication, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Communication), args.Error(1)
}
