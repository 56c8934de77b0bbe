package impl

import (
	"context"
	"log/slog"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo       repository.UserRepository
	passwordHasher service.PasswordHasher
	tokenService   service.TokenService
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	PasswordHasher service.PasswordHasher
	TokenService   service.TokenService
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:       params.UserRepo,
		passwordHasher: params.PasswordHasher,
		tokenService:   params.TokenService,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a staff account with a hashed password and issues a token.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthResult, error) {
	if err := srv.passwordHasher.ValidateStrength(input.Password); err != nil {
		return nil, err
	}

	role := entity.RoleUser
	if input.Role != "" {
		role = entity.Role(input.Role)
		if !role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role: " + input.Role)
		}
	}

	hash, err := srv.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         role,
		Status:       entity.UserStatusActive,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrDuplicateEmail
		}

		srv.log(ctx).Error("Failed to register user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID), slog.String("role", role.String()))

	return &usecase.AuthResult{User: user, Token: token}, nil
}

// Login verifies the credentials and the account status, then issues a token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthResult, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	if !srv.passwordHasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if user.Status != entity.UserStatusActive {
		return nil, domainerrors.ErrAccountNotActive
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return &usecase.AuthResult{User: user, Token: token}, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (srv *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to look up user")
	}

	if !srv.passwordHasher.Check(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	if err := srv.passwordHasher.ValidateStrength(input.NewPassword); err != nil {
		return err
	}

	hash, err := srv.passwordHasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	if err := srv.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return errors.Wrap(err, "failed to store new password")
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", userID))

	return nil
}

// VerifyToken validates a bearer token and loads its user. Tokens of deleted or
// deactivated accounts are rejected.
func (srv *authService) VerifyToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized.WithDetails(err.Error())
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "failed to load token user")
	}

	if user.Status != entity.UserStatusActive {
		return nil, domainerrors.ErrAccountNotActive
	}

	return user, nil
}
