package repository

import (
	"context"

	"crm/internal/domain/repository"
)

// MockTransactionManager is a pass-through TransactionManager for tests. It
// hands Factory to the callback without any real transaction; a non-nil Err is
// returned before the callback runs.
type MockTransactionManager struct {
	Factory repository.RepositoryFactory
	Err     error
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}

// MockRepositoryFactory returns the injected mocks as transaction-bound
// repositories.
type MockRepositoryFactory struct {
	CustomerRepo      repository.CustomerRepository
	OrderRepo         repository.OrderRepository
	ProductRepo       repository.ProductRepository
	TagRepo           repository.TagRepository
	CommunicationRepo repository.CommunicationRepository
	TaskRepo          repository.TaskRepository
	UserRepo          repository.UserRepository
}

func (f *MockRepositoryFactory) NewCustomerRepository() repository.CustomerRepository {
	return f.CustomerRepo
}

func (f *MockRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return f.OrderRepo
}

func (f *MockRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return f.ProductRepo
}

func (f *MockRepositoryFactory) NewTagRepository() repository.TagRepository {
	return f.TagRepo
}

func (f *MockRepositoryFactory) NewCommunicationRepository() repository.CommunicationRepository {
	return f.CommunicationRepo
}

func (f *MockRepositoryFactory) NewTaskRepository() repository.TaskRepository {
	return f.TaskRepo
}

func (f *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.UserRepo
}
