package checkins

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/qr-checkin/backend/internal/models"
)

// MemoryLedger is an in-memory check-in ledger. The mutex makes Append an
// atomic insert-if-absent, matching the PostgreSQL repository's guarantee.
type MemoryLedger struct {
	mu      sync.RWMutex
	records map[string]models.Checkin
	now     func() time.Time
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{records: make(map[string]models.Checkin), now: time.Now}
}

// SetClock overrides the ledger clock, for tests.
func (l *MemoryLedger) SetClock(now func() time.Time) {
	l.now = now
}

func (l *MemoryLedger) Find(_ context.Context, guestID string) (*models.Checkin, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[guestID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (l *MemoryLedger) ListAll(ctx context.Context) ([]models.Checkin, error) {
	return l.Recent(ctx, 0)
}

func (l *MemoryLedger) Recent(_ context.Context, limit int) ([]models.Checkin, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	list := make([]models.Checkin, 0, len(l.records))
	for _, rec := range l.records {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Timestamp > list[j].Timestamp })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (l *MemoryLedger) Append(_ context.Context, guestID, name string) (*models.Checkin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.records[guestID]; ok {
		return &existing, ErrAlreadyCheckedIn
	}
	rec := models.NewCheckin(guestID, name, l.now())
	l.records[guestID] = rec
	return &rec, nil
}

func (l *MemoryLedger) Count(_ context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records), nil
}

var _ Ledger = (*MemoryLedger)(nil)
