package auth

import (
	"testing"

	"crm/config"
	domainerrors "crm/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password
	assert.True(t, hasher.Check(password, hash))

	// Incorrect password
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Empty password
	assert.False(t, hasher.Check("", hash))

	// Invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 6},
	}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("StrongPass123!")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, 6, cost)
}

func TestBcryptHasher_ValidateStrength(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	validPasswords := []string{
		"StrongPass123",
		"MySecure@Pass1",
		"Complex#Secret9",
		"Valid$Phrase2024",
		"Pässphräse123",
	}
	for _, password := range validPasswords {
		assert.NoError(t, hasher.ValidateStrength(password), "expected valid password: %s", password)
	}

	tests := []struct {
		password    string
		wantDetails string
	}{
		{"123", "at least 8 characters"},
		{"PASSWORD123", "lowercase letter"},
		{"password123", "uppercase letter"},
		{"PasswordABC", "at least one number"},
		{"!@#$%^&*()", "uppercase letter"},
		{"", "at least 8 characters"},
	}
	for _, tt := range tests {
		err := hasher.ValidateStrength(tt.password)
		assert.Error(t, err, "expected error for password: %s", tt.password)

		var appErr domainerrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrPasswordStrength.ErrorCode(), appErr.ErrorCode())
		assert.Contains(t, appErr.Details(), tt.wantDetails)
	}
}

func TestBcryptHasher_ValidateStrength_CustomPolicy(t *testing.T) {
	cfg := &config.Config{
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:      4,
			MaxLength:      10,
			RequireSpecial: true,
		},
	}
	hasher := NewBcryptHasher(cfg)

	// Special char now required, case and digits are not.
	assert.NoError(t, hasher.ValidateStrength("abc!"))
	assert.Error(t, hasher.ValidateStrength("abcd"))

	// Over the max length.
	assert.Error(t, hasher.ValidateStrength("abcdefghijk!"))
}
