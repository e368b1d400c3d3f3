package ports

import (
	"context"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

// SessionStore is the opaque key-value persistence for the client-held
// session: written on login, read once at startup, cleared on logout.
// Load returns (nil, nil) when no session is persisted.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Load(ctx context.Context) (*domain.Session, error)
	Clear(ctx context.Context) error
}
