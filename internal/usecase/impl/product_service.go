package impl

import (
	"context"
	"log/slog"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/query"
	"crm/internal/domain/repository"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct validates the input and persists a new product.
func (srv *productService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	status := entity.ProductStatusActive
	if input.Status != "" {
		status = entity.ProductStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product status: " + input.Status)
		}
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Status:      status,
	}

	if err := srv.productRepo.Create(ctx, product, input.TagIDs); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, domainerrors.ErrTagNotFound
		}

		srv.log(ctx).Error("Failed to create product", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID))

	return srv.GetProduct(ctx, product.ID)
}

// GetProduct retrieves a product with tags and order items.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// ListProducts returns one page of products under the supplied predicate.
func (srv *productService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*query.Page[*entity.Product], error) {
	if input.Status != "" && !entity.ProductStatus(input.Status).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product status: " + input.Status)
	}

	products, total, err := srv.productRepo.List(ctx, repository.ProductListOptions{
		Search:   input.Search,
		Status:   entity.ProductStatus(input.Status),
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Page:     input.Page,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &query.Page[*entity.Product]{
		Items:    products,
		PageInfo: query.NewPageInfo(input.Page, total),
	}, nil
}

// UpdateProduct applies a partial update to an existing product.
func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product for update")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Status != nil {
		status := entity.ProductStatus(*input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product status: " + *input.Status)
		}
		product.Status = status
	}

	if err := srv.productRepo.Update(ctx, product, input.TagIDs); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	return srv.GetProduct(ctx, id)
}

// DeleteProduct removes a product unless any order item references it. The
// check and the delete run inside one transaction.
func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		refs, err := productRepo.CountOrderReferences(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count order references")
		}
		if refs > 0 {
			return domainerrors.ErrProductInUse
		}

		if err := productRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))

	return nil
}

// AddTag links an existing tag to a product.
func (srv *productService) AddTag(ctx context.Context, productID, tagID uuid.UUID) error {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to find product for tagging")
	}

	if err := srv.productRepo.AttachTag(ctx, productID, tagID); err != nil {
		return errors.Wrap(err, "failed to attach tag to product")
	}

	return nil
}

// RemoveTag unlinks a tag from a product.
func (srv *productService) RemoveTag(ctx context.Context, productID, tagID uuid.UUID) error {
	if err := srv.productRepo.DetachTag(ctx, productID, tagID); err != nil {
		return errors.Wrap(err, "failed to detach tag from product")
	}

	return nil
}
