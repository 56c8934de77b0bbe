package impl

import (
	"context"
	"testing"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	mockRepo "crm/internal/mocks/repository"
	mockService "crm/internal/mocks/service"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceFixture struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestAuthService(_ *testing.T) *authServiceFixture {
	userRepo := &mockRepo.MockUserRepository{}
	hasher := &mockService.MockPasswordHasher{}
	tokenService := &mockService.MockTokenService{}

	authService := NewAuthService(AuthServiceParams{
		UserRepo:       userRepo,
		PasswordHasher: hasher,
		TokenService:   tokenService,
		Logger:         discardLogger(),
	})

	return &authServiceFixture{
		service:      authService,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()

	fixture.hasher.On("ValidateStrength", "Str0ng!pass").Return(nil)
	fixture.hasher.On("Hash", "Str0ng!pass").Return("$2a$hash", nil)
	fixture.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)
	fixture.tokenService.On("GenerateToken", mock.AnythingOfType("uuid.UUID"), "new@crm.test", entity.RoleUser).
		Return("signed.jwt", nil)

	result, err := fixture.service.Register(ctx, &usecase.RegisterInput{
		Email:    "new@crm.test",
		Name:     "New Person",
		Password: "Str0ng!pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", result.Token)
	assert.Equal(t, entity.RoleUser, result.User.Role)
	assert.Equal(t, "$2a$hash", result.User.PasswordHash)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)

	fixture.hasher.On("ValidateStrength", "abc").
		Return(domainerrors.ErrPasswordStrength.WithDetails("password must be at least 8 characters"))

	_, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "new@crm.test",
		Name:     "New Person",
		Password: "abc",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrPasswordStrength.ErrorCode(), appErr.ErrorCode())
	fixture.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()

	fixture.hasher.On("ValidateStrength", mock.Anything).Return(nil)
	fixture.hasher.On("Hash", mock.Anything).Return("$2a$hash", nil)
	fixture.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrDuplicateEmail)

	_, err := fixture.service.Register(ctx, &usecase.RegisterInput{
		Email:    "taken@crm.test",
		Name:     "Someone",
		Password: "Str0ng!pass",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode())
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)

	fixture.hasher.On("ValidateStrength", mock.Anything).Return(nil)

	_, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "new@crm.test",
		Name:     "New Person",
		Password: "Str0ng!pass",
		Role:     "superuser",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{
		ID:           userID,
		Email:        "staff@crm.test",
		PasswordHash: "$2a$hash",
		Role:         entity.RoleManager,
		Status:       entity.UserStatusActive,
	}

	fixture.userRepo.On("FindByEmail", ctx, "staff@crm.test").Return(user, nil)
	fixture.hasher.On("Check", "Str0ng!pass", "$2a$hash").Return(true)
	fixture.tokenService.On("GenerateToken", userID, "staff@crm.test", entity.RoleManager).
		Return("signed.jwt", nil)

	result, err := fixture.service.Login(ctx, &usecase.LoginInput{
		Email:    "staff@crm.test",
		Password: "Str0ng!pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", result.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()

	fixture.userRepo.On("FindByEmail", ctx, "staff@crm.test").
		Return(&entity.User{PasswordHash: "$2a$hash", Status: entity.UserStatusActive}, nil)
	fixture.hasher.On("Check", "wrong", "$2a$hash").Return(false)

	_, err := fixture.service.Login(ctx, &usecase.LoginInput{
		Email:    "staff@crm.test",
		Password: "wrong",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode())
}

func TestAuthService_Login_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()

	fixture.userRepo.On("FindByEmail", ctx, "ghost@crm.test").
		Return(nil, repository.ErrUserNotFound)

	_, err := fixture.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@crm.test",
		Password: "whatever",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), appErr.ErrorCode())
}

func TestAuthService_Login_SuspendedAccount(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()

	fixture.userRepo.On("FindByEmail", ctx, "staff@crm.test").
		Return(&entity.User{PasswordHash: "$2a$hash", Status: entity.UserStatusSuspended}, nil)
	fixture.hasher.On("Check", "Str0ng!pass", "$2a$hash").Return(true)

	_, err := fixture.service.Login(ctx, &usecase.LoginInput{
		Email:    "staff@crm.test",
		Password: "Str0ng!pass",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrAccountNotActive.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, 403, appErr.HTTPCode())
	fixture.tokenService.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fixture.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, PasswordHash: "$2a$old"}, nil)
	fixture.hasher.On("Check", "OldPass1!", "$2a$old").Return(true)
	fixture.hasher.On("ValidateStrength", "NewPass1!").Return(nil)
	fixture.hasher.On("Hash", "NewPass1!").Return("$2a$new", nil)
	fixture.userRepo.On("UpdatePassword", ctx, userID, "$2a$new").Return(nil)

	err := fixture.service.ChangePassword(ctx, userID, &usecase.ChangePasswordInput{
		CurrentPassword: "OldPass1!",
		NewPassword:     "NewPass1!",
	})

	require.NoError(t, err)
	fixture.userRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fixture.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, PasswordHash: "$2a$old"}, nil)
	fixture.hasher.On("Check", "wrong", "$2a$old").Return(false)

	err := fixture.service.ChangePassword(ctx, userID, &usecase.ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "NewPass1!",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode())
	fixture.userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_VerifyToken(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fixture.tokenService.On("ValidateToken", "signed.jwt").
		Return(&service.Claims{UserID: userID, Email: "staff@crm.test", Role: entity.RoleSales}, nil)
	fixture.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.UserStatusActive, Role: entity.RoleSales}, nil)

	user, err := fixture.service.VerifyToken(ctx, "signed.jwt")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestAuthService_VerifyToken_DeactivatedUser(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fixture.tokenService.On("ValidateToken", "signed.jwt").
		Return(&service.Claims{UserID: userID}, nil)
	fixture.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.UserStatusInactive}, nil)

	_, err := fixture.service.VerifyToken(ctx, "signed.jwt")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrAccountNotActive.ErrorCode(), appErr.ErrorCode())
}

func TestAuthService_VerifyToken_InvalidToken(t *testing.T) {
	t.Parallel()

	fixture := createTestAuthService(t)

	fixture.tokenService.On("ValidateToken", "garbage").
		Return(nil, assert.AnError)

	_, err := fixture.service.VerifyToken(context.Background(), "garbage")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode())
	fixture.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
