package service

import (
	"sync"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

// sessionHolder is the single mutable session reference for a client
// instance. Replacement is atomic under the mutex: concurrent successful
// logins resolve last-write-wins and a failed attempt never clears a
// session installed by a concurrent success.
type sessionHolder struct {
	mu  sync.RWMutex
	cur *domain.Session
}

func (h *sessionHolder) set(s *domain.Session) {
	h.mu.Lock()
	h.cur = s
	h.mu.Unlock()
}

func (h *sessionHolder) get() *domain.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}

// clear drops the held session and returns what was held.
func (h *sessionHolder) clear() *domain.Session {
	h.mu.Lock()
	prev := h.cur
	h.cur = nil
	h.mu.Unlock()
	return prev
}
