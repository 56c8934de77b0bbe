package handler

import (
	"log/slog"
	"net/http"

	"crm/internal/delivery/http/response"
	"crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CustomerHandler holds dependencies for customer-related handlers.
type CustomerHandler struct {
	uc     usecase.CustomerUsecase
	logger *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(uc usecase.CustomerUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, logger: logger}
}

// Create handles the customer creation request.
func (h *CustomerHandler) Create(c echo.Context) error {
	var input usecase.CreateCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	customer, err := h.uc.CreateCustomer(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, customer, "Customer created successfully")
}

// Get handles the single customer lookup.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.uc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "")
}

// List handles the filtered, paginated customer listing.
func (h *CustomerHandler) List(c echo.Context) error {
	var input usecase.ListCustomersInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing parameters")
	}
	input.Page = bindPagination(c)

	page, err := h.uc.ListCustomers(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Update handles the partial customer update.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input usecase.UpdateCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	customer, err := h.uc.UpdateCustomer(c.Request().Context(), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "Customer updated successfully")
}

// Delete handles the customer deletion request.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Customer deleted successfully")
}

// Analytics handles the customer segment/top-customer report.
func (h *CustomerHandler) Analytics(c echo.Context) error {
	analytics, err := h.uc.Analytics(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, analytics, "")
}

// AddTag handles attaching a tag by name to a customer.
func (h *CustomerHandler) AddTag(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Name string `json:"name" validate:"required,min=2"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tag input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	tag, err := h.uc.AddTag(c.Request().Context(), id, input.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tag, "Tag attached successfully")
}

// InteractionHistory handles the recent communications/orders lookup.
func (h *CustomerHandler) InteractionHistory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	history, err := h.uc.GetInteractionHistory(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, history, "")
}
