package ports

import (
	"context"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// UpdateProfileInput carries optional profile fields; nil means untouched.
type UpdateProfileInput struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// AuthService implements registration, login and account maintenance.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials, rejects deactivated accounts, records the
	// last-login timestamp and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	// Deactivate soft-deletes the account; users are never hard-deleted.
	Deactivate(ctx context.Context, userID string) error
}
