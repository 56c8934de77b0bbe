// Package impl contains the implementation of the application's business logic.
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

const (
	interactionHistoryComms  = 50
	interactionHistoryOrders = 20
	topCustomersLimit        = 10
)

// customerService implements the CustomerUsecase interface.
type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	commRepo     repository.CommunicationRepository
	tagRepo      repository.TagRepository
	logger       *slog.Logger
}

// CustomerServiceParams holds dependencies for customerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
	OrderRepo    repository.OrderRepository
	CommRepo     repository.CommunicationRepository
	TagRepo      repository.TagRepository
	Logger       *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: params.CustomerRepo,
		orderRepo:    params.OrderRepo,
		commRepo:     params.CommRepo,
		tagRepo:      params.TagRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCustomer validates the input and persists a new customer.
func (srv *customerService) CreateCustomer(ctx context.Context, input *usecase.CreateCustomerInput) (*entity.Customer, error) {
	status := entity.CustomerStatusActive
	if input.Status != "" {
		status = entity.CustomerStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown customer status: " + input.Status)
		}
	}

	customerType := entity.CustomerTypeRegular
	if input.Type != "" {
		customerType = entity.CustomerType(input.Type)
		if !customerType.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown customer type: " + input.Type)
		}
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Notes:   input.Notes,
		Status:  status,
		Type:    customerType,
	}

	if err := srv.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrDuplicateEmail
		}

		srv.log(ctx).Error("Failed to create customer", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create customer")
	}

	srv.log(ctx).Info("Customer created", slog.Any("customerID", customer.ID))

	return customer, nil
}

// GetCustomer retrieves a customer with orders, tags and communications.
func (srv *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to get customer")
	}

	return customer, nil
}

// ListCustomers returns one page of customers under the supplied predicate.
func (srv *customerService) ListCustomers(ctx context.Context, input *usecase.ListCustomersInput) (*query.Page[*entity.Customer], error) {
	if input.Status != "" && !entity.CustomerStatus(input.Status).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown customer status: " + input.Status)
	}
	if input.Type != "" && !entity.CustomerType(input.Type).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown customer type: " + input.Type)
	}

	customers, total, err := srv.customerRepo.List(ctx, repository.CustomerListOptions{
		Search: input.Search,
		Status: entity.CustomerStatus(input.Status),
		Type:   entity.CustomerType(input.Type),
		Page:   input.Page,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return &query.Page[*entity.Customer]{
		Items:    customers,
		PageInfo: query.NewPageInfo(input.Page, total),
	}, nil
}

// UpdateCustomer applies a partial update to an existing customer.
func (srv *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *usecase.UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer for update")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Company != nil {
		customer.Company = *input.Company
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.Status != nil {
		status := entity.CustomerStatus(*input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown customer status: " + *input.Status)
		}
		customer.Status = status
	}
	if input.Type != nil {
		customerType := entity.CustomerType(*input.Type)
		if !customerType.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown customer type: " + *input.Type)
		}
		customer.Type = customerType
	}

	if err := srv.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrDuplicateEmail
		}
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to update customer")
	}

	return customer, nil
}

// DeleteCustomer removes a customer.
func (srv *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := srv.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return domainerrors.ErrCustomerNotFound
		}

		return errors.Wrap(err, "failed to delete customer")
	}

	srv.log(ctx).Info("Customer deleted", slog.Any("customerID", id))

	return nil
}

// Analytics groups customers by (type, status) and ranks the top customers by
// completed-order revenue.
func (srv *customerService) Analytics(ctx context.Context) (*usecase.CustomerAnalytics, error) {
	segments, err := srv.customerRepo.Segments(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load customer segments")
	}

	top, err := srv.customerRepo.TopByLifetimeValue(ctx, topCustomersLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank customers")
	}

	return &usecase.CustomerAnalytics{
		Segments:     segments,
		TopCustomers: top,
	}, nil
}

// AddTag upserts a tag by name and attaches it to the customer.
func (srv *customerService) AddTag(ctx context.Context, customerID uuid.UUID, tagName string) (*entity.Tag, error) {
	if _, err := srv.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer for tagging")
	}

	tag, err := srv.tagRepo.UpsertByName(ctx, tagName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert tag")
	}

	if err := srv.customerRepo.AttachTag(ctx, customerID, tag.ID); err != nil {
		return nil, errors.Wrap(err, "failed to attach tag to customer")
	}

	return tag, nil
}

// GetInteractionHistory returns the customer's recent communications and orders.
func (srv *customerService) GetInteractionHistory(ctx context.Context, customerID uuid.UUID) (*usecase.InteractionHistory, error) {
	if _, err := srv.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer for history")
	}

	comms, err := srv.commRepo.FindRecentByCustomer(ctx, customerID, interactionHistoryComms)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent communications")
	}

	orders, err := srv.orderRepo.FindRecentByCustomer(ctx, customerID, interactionHistoryOrders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent orders")
	}

	return &usecase.InteractionHistory{
		Communications: comms,
		Orders:         orders,
	}, nil
}
