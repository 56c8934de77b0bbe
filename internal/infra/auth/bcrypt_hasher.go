// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"crm/config"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/service"
	"crm/internal/errors"
)

// defaultStrengthPolicy is used when the config omits a passwordStrength section.
var defaultStrengthPolicy = config.PasswordStrengthConfig{
	MinLength:        8,
	MaxLength:        128,
	RequireUppercase: true,
	RequireLowercase: true,
	RequireNumbers:   true,
	RequireSpecial:   false,
}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	policy := defaultStrengthPolicy
	if cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost and the default
// strength policy. Intended for tests that need a cheap cost factor.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost, policy: defaultStrengthPolicy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt.GenerateFromPassword")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidateStrength checks the plaintext password against the configured policy.
// It returns the domain password-strength error carrying the first violated rule.
func (h *bcryptHasher) ValidateStrength(password string) error {
	runes := []rune(password)

	if len(runes) < h.policy.MinLength {
		return domainerrors.ErrPasswordStrength.WithDetails(
			fmt.Sprintf("password must be at least %d characters long", h.policy.MinLength))
	}
	if h.policy.MaxLength > 0 && len(runes) > h.policy.MaxLength {
		return domainerrors.ErrPasswordStrength.WithDetails(
			fmt.Sprintf("password must be at most %d characters long", h.policy.MaxLength))
	}
	if h.policy.RequireUppercase && !hasClass(runes, unicode.IsUpper) {
		return domainerrors.ErrPasswordStrength.WithDetails(
			"password must contain at least one uppercase letter")
	}
	if h.policy.RequireLowercase && !hasClass(runes, unicode.IsLower) {
		return domainerrors.ErrPasswordStrength.WithDetails(
			"password must contain at least one lowercase letter")
	}
	if h.policy.RequireNumbers && !hasClass(runes, unicode.IsDigit) {
		return domainerrors.ErrPasswordStrength.WithDetails(
			"password must contain at least one number")
	}
	if h.policy.RequireSpecial && !hasClass(runes, isSpecial) {
		return domainerrors.ErrPasswordStrength.WithDetails(
			"password must contain at least one special character")
	}

	return nil
}

func hasClass(runes []rune, match func(rune) bool) bool {
	for _, r := range runes {
		if match(r) {
			return true
		}
	}

	return false
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}
