package impl

import (
	"context"
	"log/slog"
	"time"

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

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	CustomerRepo repository.CustomerRepository
	ProductRepo  repository.ProductRepository
	Logger       *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		customerRepo: params.CustomerRepo,
		productRepo:  params.ProductRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder validates the customer and every product, then persists the order
// with its items as one compound write.
func (srv *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	status := entity.OrderStatusPending
	if input.Status != "" {
		status = entity.OrderStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status: " + input.Status)
		}
	}

	if _, err := srv.customerRepo.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to verify order customer")
	}

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := srv.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify order products")
	}
	known := make(map[uuid.UUID]struct{}, len(products))
	for _, product := range products {
		known[product.ID] = struct{}{}
	}
	for _, item := range input.Items {
		if _, ok := known[item.ProductID]; !ok {
			return nil, domainerrors.ErrProductNotFound.WithDetails("unknown product: " + item.ProductID.String())
		}
	}

	order := &entity.Order{
		CustomerID: input.CustomerID,
		UserID:     userID,
		Total:      input.Total,
		Status:     status,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		srv.log(ctx).Error("Failed to create order", slog.Any("customerID", input.CustomerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order created", slog.Any("orderID", order.ID), slog.Any("customerID", order.CustomerID))

	// Return the hydrated order with customer, items and products resolved.
	return srv.GetOrder(ctx, order.ID)
}

// GetOrder retrieves an order with its relations.
func (srv *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to get order")
	}

	return order, nil
}

// ListOrders returns one page of orders under the supplied predicate.
func (srv *orderService) ListOrders(ctx context.Context, input *usecase.ListOrdersInput) (*query.Page[*entity.Order], error) {
	if input.Status != "" && !entity.OrderStatus(input.Status).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status: " + input.Status)
	}

	orders, total, err := srv.orderRepo.List(ctx, repository.OrderListOptions{
		CustomerID: input.CustomerID,
		UserID:     input.UserID,
		Status:     entity.OrderStatus(input.Status),
		MinTotal:   input.MinTotal,
		MaxTotal:   input.MaxTotal,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Page:       input.Page,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &query.Page[*entity.Order]{
		Items:    orders,
		PageInfo: query.NewPageInfo(input.Page, total),
	}, nil
}

// UpdateOrderStatus transitions an order to the given status.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error) {
	orderStatus := entity.OrderStatus(status)
	if !orderStatus.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status: " + status)
	}

	if err := srv.orderRepo.UpdateStatus(ctx, id, orderStatus); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to update order status")
	}

	return srv.GetOrder(ctx, id)
}

// DeleteOrder removes an order. Only cancelled orders are deletable; the check
// and the delete run inside one transaction.
func (srv *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order for delete")
		}

		if order.Status != entity.OrderStatusCancelled {
			return domainerrors.ErrOrderNotDeletable
		}

		return orderRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Order deleted", slog.Any("orderID", id))

	return nil
}

// CustomerTotalPurchases sums a customer's completed orders.
func (srv *orderService) CustomerTotalPurchases(ctx context.Context, customerID uuid.UUID) (*entity.PurchaseTotals, error) {
	if _, err := srv.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to verify customer")
	}

	totals, err := srv.orderRepo.SumCompletedByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum purchases")
	}

	return &totals, nil
}

// AdvancedQuery runs a validated generic filter list against orders. An unknown
// operator or a field outside the allow-list rejects the whole query.
func (srv *orderService) AdvancedQuery(ctx context.Context, input *usecase.AdvancedOrderQueryInput) (*query.Page[*entity.Order], error) {
	if err := query.ValidateFilters(input.Filters, repository.OrderFilterFields); err != nil {
		return nil, domainerrors.ErrInvalidFilter.WithDetails(err.Error())
	}
	if err := input.Sort.Validate(repository.OrderFilterFields); err != nil {
		return nil, domainerrors.ErrInvalidFilter.WithDetails(err.Error())
	}

	orders, total, err := srv.orderRepo.AdvancedQuery(ctx, input.Filters, input.Sort, input.Page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run advanced order query")
	}

	return &query.Page[*entity.Order]{
		Items:    orders,
		PageInfo: query.NewPageInfo(input.Page, total),
	}, nil
}

// Report groups orders created inside the window by status.
func (srv *orderService) Report(ctx context.Context, start, end time.Time) ([]entity.OrderStatusReport, error) {
	report, err := srv.orderRepo.ReportByStatus(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build order report")
	}

	return report, nil
}
