package ports

import (
	"context"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

// AuthService is the application-facing authentication contract.
type AuthService interface {
	// Login verifies credentials and installs a fresh session. Unknown
	// email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*domain.Session, error)

	// Register creates a new account. Role defaults to domain.RoleUser when
	// empty. Validation happens before any store access.
	Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)

	// Logout clears the held session and the persisted token. Idempotent.
	Logout(ctx context.Context)

	// CurrentSession returns the held session without contacting the store.
	CurrentSession() *domain.Session

	// Restore reloads a previously persisted session, discarding it when
	// the token has expired.
	Restore(ctx context.Context) (*domain.Session, error)

	// IsAdmin reports whether the session carries the admin role.
	IsAdmin(session *domain.Session) bool

	// GetUserByID returns an active user. Admin-gated.
	GetUserByID(ctx context.Context, id string, session *domain.Session) (*domain.User, error)

	// ListUsers returns active users ordered by created_at ascending.
	// Admin-gated. limit <= 0 means no limit.
	ListUsers(ctx context.Context, session *domain.Session, limit, offset int) ([]*domain.User, error)
}
