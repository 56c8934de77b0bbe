package impl

import (
	"context"
	"testing"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	mockRepo "crm/internal/mocks/repository"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceFixture struct {
	service     usecase.ProductUsecase
	productRepo *mockRepo.MockProductRepository
}

func createTestProductService(_ *testing.T) *productServiceFixture {
	productRepo := &mockRepo.MockProductRepository{}

	txManager := &mockRepo.MockTransactionManager{
		Factory: &mockRepo.MockRepositoryFactory{
			ProductRepo: productRepo,
		},
	}

	service := NewProductService(ProductServiceParams{
		TxManager:   txManager,
		ProductRepo: productRepo,
		Logger:      discardLogger(),
	})

	return &productServiceFixture{
		service:     service,
		productRepo: productRepo,
	}
}

func TestProductService_DeleteProduct_BlockedByOrderReferences(t *testing.T) {
	t.Parallel()

	fixture := createTestProductService(t)
	ctx := context.Background()
	productID := uuid.New()

	fixture.productRepo.On("CountOrderReferences", ctx, productID).
		Return(int64(3), nil)

	err := fixture.service.DeleteProduct(ctx, productID)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProductInUse.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, 409, appErr.HTTPCode())
	// The product row must stay untouched.
	fixture.productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_DeleteProduct_NoReferences(t *testing.T) {
	t.Parallel()

	fixture := createTestProductService(t)
	ctx := context.Background()
	productID := uuid.New()

	fixture.productRepo.On("CountOrderReferences", ctx, productID).
		Return(int64(0), nil)
	fixture.productRepo.On("Delete", ctx, productID).Return(nil)

	err := fixture.service.DeleteProduct(ctx, productID)

	require.NoError(t, err)
	fixture.productRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_DefaultsToActive(t *testing.T) {
	t.Parallel()

	fixture := createTestProductService(t)
	ctx := context.Background()

	fixture.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product"), []uuid.UUID(nil)).
		Run(func(args mock.Arguments) {
			product := args.Get(1).(*entity.Product)
			product.ID = uuid.New()
			assert.Equal(t, entity.ProductStatusActive, product.Status)
		}).
		Return(nil)
	fixture.productRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&entity.Product{Name: "Widget", Status: entity.ProductStatusActive}, nil)

	product, err := fixture.service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:  "Widget",
		Price: 19.99,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
}

func TestProductService_ListProducts_InvalidStatus(t *testing.T) {
	t.Parallel()

	fixture := createTestProductService(t)

	_, err := fixture.service.ListProducts(context.Background(), &usecase.ListProductsInput{
		Status: "discontinued-maybe",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	fixture.productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
