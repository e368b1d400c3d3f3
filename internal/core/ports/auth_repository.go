package ports

import (
	"context"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

// AuthRepository is the credential store capability consumed by the auth
// service. Implementations must translate storage failures to the domain
// taxonomy: a uniqueness violation on email becomes domain.ErrEmailExists,
// a missing row becomes domain.ErrUserNotFound, anything else
// domain.ErrDatabase.
type AuthRepository interface {
	// FindByEmail returns the active user with exactly this email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Insert persists a new user and returns it with the store-assigned ID.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)

	// UpdateLastLogin stamps the user's last_login column.
	UpdateLastLogin(ctx context.Context, id string) error

	// FindByID returns the active user with this ID.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// List returns active users ordered by created_at ascending.
	// limit <= 0 means no limit; offset < 0 is treated as 0.
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}
