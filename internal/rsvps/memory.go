package rsvps

import (
	"context"
	"sync"

	"github.com/qr-checkin/backend/internal/models"
)

// MemoryStore is an in-memory RSVP store with upsert semantics, used in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	rsvps map[string]models.RSVP
}

// NewMemoryStore creates an empty in-memory RSVP store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rsvps: make(map[string]models.RSVP)}
}

func (s *MemoryStore) Get(_ context.Context, guestID string) (*models.RSVP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rsvps[guestID]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) Upsert(_ context.Context, r models.RSVP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rsvps[r.GuestID] = r
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (models.RSVPStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats models.RSVPStats
	for _, r := range s.rsvps {
		stats.Total++
		switch r.Status {
		case models.RSVPStatusConfirmed:
			stats.Confirmed++
		case models.RSVPStatusDeclined:
			stats.Declined++
		case models.RSVPStatusPending:
			stats.Pending++
		}
	}
	return stats, nil
}

var _ Store = (*MemoryStore)(nil)
