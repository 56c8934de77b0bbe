package usecase

import (
	"context"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput represents the input for registering a staff account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty"`
}

// LoginInput represents the credentials for logging in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput verifies the current password before replacing it.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// AuthUsecase defines the authentication use cases.
type AuthUsecase interface {
	// Register creates a staff account with a bcrypt-hashed password and issues
	// a token. A duplicate email yields a conflict.
	Register(ctx context.Context, input *RegisterInput) (*AuthResult, error)

	// Login verifies credentials and account status, then issues a token.
	Login(ctx context.Context, input *LoginInput) (*AuthResult, error)

	// ChangePassword verifies the current password before storing the new hash.
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error

	// VerifyToken validates a bearer token and loads its active user.
	VerifyToken(ctx context.Context, token string) (*entity.User, error)
}
