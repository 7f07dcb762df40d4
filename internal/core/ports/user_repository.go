package ports

import (
	"context"
	"time"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as a
	// *domain.ConflictError naming the email field.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists the mutable profile fields of the given user.
	Update(ctx context.Context, user *domain.User) error
	// RecordLogin sets the last-authenticated timestamp. Called only on
	// explicit login, never on token verification.
	RecordLogin(ctx context.Context, id string, at time.Time) error
}
