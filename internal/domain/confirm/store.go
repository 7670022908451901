package confirm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"storeadmin/internal/domain"
	"storeadmin/pkg/logger"
)

// DefaultTTL is how long a request can be answered, and how long an answered
// request is kept to reject a second answer.
const DefaultTTL = 5 * time.Minute

// Store keeps requests in memory.
type Store struct {
	mu    sync.Mutex
	items map[string]*Request
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a store; ttl <= 0 uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		items: make(map[string]*Request),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Open registers a pending request and returns a copy of it.
func (s *Store) Open(entity domain.Entity, targetID int64, action domain.Action, message, requestedBy string) Request {
	now := s.now()
	req := &Request{
		ID:          uuid.NewString(),
		Entity:      entity,
		TargetID:    targetID,
		Action:      action,
		Message:     message,
		RequestedBy: requestedBy,
		Status:      StatusPending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}

	s.mu.Lock()
	s.items[req.ID] = req
	s.mu.Unlock()

	return *req
}

// Get returns a live request.
func (s *Store) Get(id string) (Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.items[id]
	if !ok || req.expired(s.now()) {
		return Request{}, ErrNotFound
	}
	return *req, nil
}

// Answer resolves a pending request. Unknown and expired ids give
// ErrNotFound, a second answer gives ErrAlreadyAnswered.
func (s *Store) Answer(id string, confirmed bool) (Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	req, ok := s.items[id]
	if !ok || req.expired(now) {
		return Request{}, ErrNotFound
	}
	if err := req.Answer(confirmed, now); err != nil {
		return *req, err
	}
	return *req, nil
}

// Reopen puts an answered request back to pending so it can be answered
// again, e.g. after the confirmed action failed. The expiry is unchanged.
func (s *Store) Reopen(id string) (Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.items[id]
	if !ok || req.expired(s.now()) {
		return Request{}, ErrNotFound
	}
	req.reopen()
	return *req, nil
}

// Sweep drops expired requests and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, req := range s.items {
		if req.expired(now) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored requests, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.FromContext(ctx).WithComponent("confirm").Debugw("expired confirmations removed", "count", n)
			}
		}
	}
}
