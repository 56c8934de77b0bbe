package handler

import (
	"log/slog"
	"net/http"
	"time"

	"crm/internal/delivery/http/response"
	"crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// Create handles the order creation request. The acting user becomes the owner.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var input usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// Get handles the single order lookup.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// List handles the filtered, paginated order listing.
func (h *OrderHandler) List(c echo.Context) error {
	var input usecase.ListOrdersInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing parameters")
	}
	input.Page = bindPagination(c)

	page, err := h.uc.ListOrders(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// UpdateStatus handles the order status transition.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), id, input.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// Delete handles the order deletion request; only cancelled orders pass.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted successfully")
}

// CustomerTotalPurchases handles the completed-purchase total for one customer.
func (h *OrderHandler) CustomerTotalPurchases(c echo.Context) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return err
	}

	totals, err := h.uc.CustomerTotalPurchases(c.Request().Context(), customerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, totals, "")
}

// Query handles the advanced filter query against orders.
func (h *OrderHandler) Query(c echo.Context) error {
	var input usecase.AdvancedOrderQueryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid query input")
	}
	input.Page = input.Page.Normalize()

	page, err := h.uc.AdvancedQuery(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Report handles the status-grouped order report over a date window.
func (h *OrderHandler) Report(c echo.Context) error {
	var start, end time.Time
	echo.QueryParamsBinder(c).
		Time("startDate", &start, time.RFC3339).
		Time("endDate", &end, time.RFC3339)

	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, -1, 0)
	}

	report, err := h.uc.Report(c.Request().Context(), start, end)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "")
}
