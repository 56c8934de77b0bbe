package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	mockUsecase "crm/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEchoContext(headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true

		return c.NoContent(http.StatusOK)
	}
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	authUsecase := &mockUsecase.MockAuthUsecase{}
	m := NewAuthMiddleware(authUsecase)

	user := &entity.User{ID: uuid.New(), Role: entity.RoleSales}
	authUsecase.On("VerifyToken", mock.Anything, "valid-token").
		Return(user, nil)

	c, _ := newTestEchoContext(map[string]string{"Authorization": "Bearer valid-token"})

	var called bool
	err := m.Authenticate(okHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, user.ID, c.Get(ContextKeyUserID))
	assert.Equal(t, entity.RoleSales, c.Get(ContextKeyRole))
	assert.Equal(t, user, c.Get(ContextKeyUser))
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	t.Parallel()

	authUsecase := &mockUsecase.MockAuthUsecase{}
	m := NewAuthMiddleware(authUsecase)

	c, _ := newTestEchoContext(nil)

	var called bool
	err := m.Authenticate(okHandler(&called))(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.False(t, called)
	authUsecase.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	t.Parallel()

	authUsecase := &mockUsecase.MockAuthUsecase{}
	m := NewAuthMiddleware(authUsecase)

	c, _ := newTestEchoContext(map[string]string{"Authorization": "Basic dXNlcjpwYXNz"})

	var called bool
	err := m.Authenticate(okHandler(&called))(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.False(t, called)
	authUsecase.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_Authenticate_RejectedToken(t *testing.T) {
	t.Parallel()

	authUsecase := &mockUsecase.MockAuthUsecase{}
	m := NewAuthMiddleware(authUsecase)

	authUsecase.On("VerifyToken", mock.Anything, "stale-token").
		Return(nil, domainerrors.ErrUnauthorized)

	c, _ := newTestEchoContext(map[string]string{"Authorization": "Bearer stale-token"})

	var called bool
	err := m.Authenticate(okHandler(&called))(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.False(t, called)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		role      any
		allowed   []entity.Role
		wantAllow bool
	}{
		{name: "admin may delete", role: entity.RoleAdmin, allowed: []entity.Role{entity.RoleAdmin}, wantAllow: true},
		{name: "sales may not delete", role: entity.RoleSales, allowed: []entity.Role{entity.RoleAdmin}, wantAllow: false},
		{name: "manager passes write tier", role: entity.RoleManager, allowed: []entity.Role{entity.RoleAdmin, entity.RoleManager}, wantAllow: true},
		{name: "user blocked from write tier", role: entity.RoleUser, allowed: []entity.Role{entity.RoleAdmin, entity.RoleManager}, wantAllow: false},
		{name: "role missing from context", role: nil, allowed: []entity.Role{entity.RoleAdmin}, wantAllow: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			authUsecase := &mockUsecase.MockAuthUsecase{}
			m := NewAuthMiddleware(authUsecase)

			c, _ := newTestEchoContext(nil)
			if tt.role != nil {
				c.Set(ContextKeyRole, tt.role)
			}

			var called bool
			err := m.RequireRole(tt.allowed...)(okHandler(&called))(c)

			if tt.wantAllow {
				require.NoError(t, err)
				assert.True(t, called)

				return
			}

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
			assert.False(t, called)
		})
	}
}
