package handler

import (
	"log/slog"
	"net/http"

	"crm/internal/delivery/http/response"
	"crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BulkHandler holds dependencies for bulk and cross-entity handlers.
type BulkHandler struct {
	uc     usecase.BulkUsecase
	logger *slog.Logger
}

// NewBulkHandler is the constructor for BulkHandler, injected by Fx.
func NewBulkHandler(uc usecase.BulkUsecase, logger *slog.Logger) *BulkHandler {
	return &BulkHandler{uc: uc, logger: logger}
}

// CreateTags inserts a batch of tags, skipping duplicate names.
func (h *BulkHandler) CreateTags(c echo.Context) error {
	var input struct {
		Tags []usecase.BulkTagInput `json:"tags" validate:"required,min=1,dive"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid bulk tag input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	result, err := h.uc.BulkCreateTags(c.Request().Context(), input.Tags)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, result, "Tags created successfully")
}

// UpdateOrders sets the status of many orders owned by the acting user.
func (h *BulkHandler) UpdateOrders(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var input usecase.BulkUpdateOrdersInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid bulk order input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	result, err := h.uc.BulkUpdateOrderStatus(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Orders updated successfully")
}

// SearchByTag resolves a tag by name and lists its related entities.
func (h *BulkHandler) SearchByTag(c echo.Context) error {
	tagName := c.QueryParam("tag")
	entityType := c.QueryParam("entityType")

	result, err := h.uc.SearchEntitiesByTag(c.Request().Context(), tagName, entityType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "")
}
