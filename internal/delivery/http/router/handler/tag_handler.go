package handler

import (
	"log/slog"
	"net/http"

	"crm/internal/delivery/http/response"
	"crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TagHandler holds dependencies for tag-related handlers.
type TagHandler struct {
	uc     usecase.TagUsecase
	logger *slog.Logger
}

// NewTagHandler is the constructor for TagHandler, injected by Fx.
func NewTagHandler(uc usecase.TagUsecase, logger *slog.Logger) *TagHandler {
	return &TagHandler{uc: uc, logger: logger}
}

// Create handles the tag creation request.
func (h *TagHandler) Create(c echo.Context) error {
	var input usecase.CreateTagInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tag input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	tag, err := h.uc.CreateTag(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, tag, "Tag created successfully")
}

// Get handles the single tag lookup with its related collections.
func (h *TagHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tag, err := h.uc.GetTag(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tag, "")
}

// List handles the filtered, paginated tag listing.
func (h *TagHandler) List(c echo.Context) error {
	var input usecase.ListTagsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing parameters")
	}
	input.Page = bindPagination(c)

	page, err := h.uc.ListTags(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Update handles the partial tag update.
func (h *TagHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input usecase.UpdateTagInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tag input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	tag, err := h.uc.UpdateTag(c.Request().Context(), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tag, "Tag updated successfully")
}

// Delete handles the tag deletion request; blocked while the tag is attached
// to any entity.
func (h *TagHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteTag(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Tag deleted successfully")
}
