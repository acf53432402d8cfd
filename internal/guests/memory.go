package guests

import (
	"context"
	"sort"
	"sync"

	"github.com/qr-checkin/backend/internal/models"
)

// MemoryStore is an in-memory guest directory with the same semantics as the
// PostgreSQL repository. Used in tests and for single-process setups.
type MemoryStore struct {
	mu     sync.RWMutex
	guests map[string]models.Guest
}

// NewMemoryStore creates an empty in-memory guest store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{guests: make(map[string]models.Guest)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guests[NormalizeID(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]models.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (s *MemoryStore) Upsert(_ context.Context, g models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = NormalizeID(g.ID)
	s.guests[g.ID] = g
	return nil
}

func (s *MemoryStore) UpdateProfile(_ context.Context, id string, upd models.GuestProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guests[NormalizeID(id)]
	if !ok {
		return ErrNotFound
	}
	if upd.Salutation != nil {
		g.Salutation = *upd.Salutation
	}
	if upd.Name != nil {
		g.Name = *upd.Name
	}
	if upd.Position != nil {
		g.Position = *upd.Position
	}
	if upd.Company != nil {
		g.Company = *upd.Company
	}
	s.guests[g.ID] = g
	return nil
}

var _ Store = (*MemoryStore)(nil)
