package impl

import (
	"context"
	"log/slog"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bulkService implements the BulkUsecase interface.
type bulkService struct {
	tagRepo   repository.TagRepository
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// BulkServiceParams holds dependencies for bulkService, injected by Fx.
type BulkServiceParams struct {
	fx.In

	TagRepo   repository.TagRepository
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewBulkService is the constructor for bulkService.
func NewBulkService(params BulkServiceParams) usecase.BulkUsecase {
	return &bulkService{
		tagRepo:   params.TagRepo,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *bulkService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// BulkCreateTags validates the whole batch up front, then inserts it in one
// statement. Duplicate names are skipped, not errors.
func (srv *bulkService) BulkCreateTags(ctx context.Context, inputs []usecase.BulkTagInput) (*usecase.BulkCreateTagsResult, error) {
	if len(inputs) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("tag batch must not be empty")
	}

	tags := make([]*entity.Tag, 0, len(inputs))
	for _, input := range inputs {
		tagType := entity.TagType(input.Type)
		if input.Type != "" && !tagType.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown tag type: " + input.Type)
		}

		tags = append(tags, &entity.Tag{
			Name:        input.Name,
			Color:       input.Color,
			Description: input.Description,
			Type:        tagType,
		})
	}

	created, err := srv.tagRepo.BulkCreate(ctx, tags)
	if err != nil {
		return nil, errors.Wrap(err, "failed to bulk create tags")
	}

	srv.log(ctx).Info("Bulk tag creation finished",
		slog.Int("requested", len(tags)), slog.Int64("created", created))

	return &usecase.BulkCreateTagsResult{Created: created}, nil
}

// BulkUpdateOrderStatus updates every listed order owned by userID in a single
// statement and reports the matched rows.
func (srv *bulkService) BulkUpdateOrderStatus(ctx context.Context, userID uuid.UUID, input *usecase.BulkUpdateOrdersInput) (*usecase.BulkUpdateOrdersResult, error) {
	status := entity.OrderStatus(input.Status)
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status: " + input.Status)
	}

	updated, err := srv.orderRepo.BulkUpdateStatus(ctx, input.OrderIDs, status, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to bulk update orders")
	}

	srv.log(ctx).Info("Bulk order update finished",
		slog.Int("requested", len(input.OrderIDs)), slog.Int64("updated", updated))

	return &usecase.BulkUpdateOrdersResult{Updated: updated}, nil
}

// SearchEntitiesByTag resolves a tag by its unique name and returns the related
// collection for the requested entity type.
func (srv *bulkService) SearchEntitiesByTag(ctx context.Context, tagName, entityType string) (*usecase.TagSearchResult, error) {
	tag, err := srv.tagRepo.FindByName(ctx, tagName)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, domainerrors.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to resolve tag by name")
	}

	result := &usecase.TagSearchResult{Tag: tag}

	switch entityType {
	case "orders":
		result.Orders, err = srv.tagRepo.RelatedOrders(ctx, tag.ID)
	case "products":
		result.Products, err = srv.tagRepo.RelatedProducts(ctx, tag.ID)
	case "customers":
		result.Customers, err = srv.tagRepo.RelatedCustomers(ctx, tag.ID)
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown entity type: " + entityType)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entities for tag")
	}

	return result, nil
}
