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

// CommunicationHandler holds dependencies for communication-related handlers.
type CommunicationHandler struct {
	uc     usecase.CommunicationUsecase
	logger *slog.Logger
}

// NewCommunicationHandler is the constructor for CommunicationHandler, injected by Fx.
func NewCommunicationHandler(uc usecase.CommunicationUsecase, logger *slog.Logger) *CommunicationHandler {
	return &CommunicationHandler{uc: uc, logger: logger}
}

// Create logs a new customer touchpoint for the acting user.
func (h *CommunicationHandler) Create(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var input usecase.CreateCommunicationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid communication input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	comm, err := h.uc.CreateCommunication(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, comm, "Communication logged successfully")
}

// Get handles the single communication lookup.
func (h *CommunicationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comm, err := h.uc.GetCommunication(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comm, "")
}

// List handles the filtered, paginated communication listing.
func (h *CommunicationHandler) List(c echo.Context) error {
	var input usecase.ListCommunicationsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing parameters")
	}
	input.Page = bindPagination(c)

	page, err := h.uc.ListCommunications(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// UpdateStatus transitions a communication's status.
func (h *CommunicationHandler) UpdateStatus(c echo.Context) error {
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

	comm, err := h.uc.UpdateStatus(c.Request().Context(), id, input.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comm, "Communication status updated successfully")
}

// Delete handles the communication deletion request.
func (h *CommunicationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCommunication(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Communication deleted successfully")
}

// AddTag links an existing tag to a communication.
func (h *CommunicationHandler) AddTag(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tagID, err := pathID(c, "tagId")
	if err != nil {
		return err
	}

	if err := h.uc.AddTag(c.Request().Context(), id, tagID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Tag attached successfully")
}

// RemoveTag unlinks a tag from a communication.
func (h *CommunicationHandler) RemoveTag(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tagID, err := pathID(c, "tagId")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveTag(c.Request().Context(), id, tagID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Tag detached successfully")
}

// CustomerSummary groups one customer's communications by type, direction and
// status.
func (h *CommunicationHandler) CustomerSummary(c echo.Context) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return err
	}

	summary, err := h.uc.CustomerSummary(c.Request().Context(), customerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}

// Report returns grouped stats and top communicators over a date window.
func (h *CommunicationHandler) Report(c echo.Context) error {
	var input usecase.CommunicationReportInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid report parameters")
	}
	echo.QueryParamsBinder(c).
		Time("startDate", &input.Start, time.RFC3339).
		Time("endDate", &input.End, time.RFC3339)

	report, err := h.uc.Report(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "")
}

// ScheduleFollowUp chains a pending outbound communication to an existing one.
func (h *CommunicationHandler) ScheduleFollowUp(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var input usecase.ScheduleFollowUpInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid follow-up input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	followUp, err := h.uc.ScheduleFollowUp(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, followUp, "Follow-up scheduled successfully")
}

// Effectiveness relates communications to same-window orders, grouped by type.
func (h *CommunicationHandler) Effectiveness(c echo.Context) error {
	var start, end time.Time
	echo.QueryParamsBinder(c).
		Time("startDate", &start, time.RFC3339).
		Time("endDate", &end, time.RFC3339)
	commType := c.QueryParam("type")

	report, err := h.uc.Effectiveness(c.Request().Context(), start, end, commType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "")
}
