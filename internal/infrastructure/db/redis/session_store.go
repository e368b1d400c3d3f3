package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

// SessionStore persists the serialized client session in Redis under a
// per-client key. It is the opaque key-value persistence read once at
// startup and cleared on logout; no server-side session table exists.
type SessionStore struct {
	client *redis.Client
	key    string
}

// NewSessionStore creates a SessionStore scoped to clientID.
func NewSessionStore(client *redis.Client, clientID string) *SessionStore {
	return &SessionStore{client: client, key: "session:" + clientID}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		// A corrupt payload is unrecoverable; drop it.
		_ = s.client.Del(ctx, s.key).Err()
		return nil, nil
	}
	return &session, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
