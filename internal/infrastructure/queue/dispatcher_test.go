package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

type recordingRepo struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *recordingRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *recordingRepo) UpdateLastLogin(_ context.Context, id string) error {
	r.mu.Lock()
	r.ids = append(r.ids, id)
	r.mu.Unlock()
	return nil
}

func (r *recordingRepo) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *recordingRepo) List(context.Context, int, int) ([]*domain.User, error) {
	return nil, nil
}

func (r *recordingRepo) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

func TestDispatcher_AppliesStamps(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, id := range []string{"a", "b", "c"} {
		d.Record(id)
	}

	deadline := time.After(2 * time.Second)
	for {
		if len(repo.seen()) == 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("stamps not applied, saw %v", repo.seen())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingRepo{}, zerolog.Nop())
	if d.shardIndex("user-1") != d.shardIndex("user-1") {
		t.Fatalf("shard index must be deterministic")
	}
}
