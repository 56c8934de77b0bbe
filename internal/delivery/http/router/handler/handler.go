// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"crm/internal/delivery/http/middleware"
	"crm/internal/delivery/http/response"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/query"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actingUserID returns the authenticated user's id set by the auth middleware.
func actingUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized.WithDetails("user id missing from context")
	}

	return userID, nil
}

// pathID parses the named path parameter as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " path parameter")
	}

	return id, nil
}

// bindPagination reads the page/limit query parameters.
func bindPagination(c echo.Context) query.Pagination {
	var page query.Pagination
	echo.QueryParamsBinder(c).
		Int("page", &page.Page).
		Int("limit", &page.Limit)

	return page
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
