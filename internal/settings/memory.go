package settings

import (
	"context"
	"sync"

	"github.com/qr-checkin/backend/internal/models"
)

// MemoryStore holds event settings in memory, used in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	settings *models.EventSettings
}

// NewMemoryStore creates an in-memory settings store with no stored row.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (models.EventSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return models.DefaultEventSettings(), nil
	}
	return *s.settings, nil
}

func (s *MemoryStore) Upsert(_ context.Context, set models.EventSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set.ID = models.EventSettingsID
	s.settings = &set
	return nil
}

var _ Store = (*MemoryStore)(nil)
