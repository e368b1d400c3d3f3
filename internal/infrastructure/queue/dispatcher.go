package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyward/flightschool-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	updateTimeout  = 10 * time.Second
)

// Dispatcher applies last-login stamps off the login path. Stamps are
// sharded by user ID across a fixed set of workers so updates for the same
// user stay ordered; each update runs under its own timeout, independent of
// whether the login caller is still waiting. Failures are logged, never
// surfaced — the stamp is best-effort by contract.
type Dispatcher struct {
	workers []chan string
	repo    ports.AuthRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuthRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues a last-login stamp for userID. Non-blocking while the
// worker channel has capacity; when full the stamp is dropped rather than
// stalling a login.
func (d *Dispatcher) Record(userID string) {
	select {
	case d.workers[d.shardIndex(userID)] <- userID:
	default:
		d.log.Warn().Str("user_id", userID).Msg("last-login queue full, stamp dropped")
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case userID, ok := <-ch:
			if !ok {
				return
			}
			updateCtx, cancel := context.WithTimeout(context.Background(), updateTimeout)
			err := d.repo.UpdateLastLogin(updateCtx, userID)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("user_id", userID).
					Int("worker_id", id).
					Msg("last-login update failed")
			}
		}
	}
}
