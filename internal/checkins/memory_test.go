package checkins

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryLedgerAppendOnce(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	first, err := ledger.Append(ctx, "G1", "A")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	again, err := ledger.Append(ctx, "G1", "A")
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
	if again.Timestamp != first.Timestamp {
		t.Fatalf("conflict must return the existing record")
	}
}

func TestMemoryLedgerAppendRace(t *testing.T) {
	ledger := NewMemoryLedger()
	const n = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := ledger.Append(context.Background(), "G1", "A"); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if created != 1 {
		t.Fatalf("expected exactly 1 successful append, got %d", created)
	}
	if total, _ := ledger.Count(context.Background()); total != 1 {
		t.Fatalf("expected 1 record, got %d", total)
	}
}

func TestMemoryLedgerListNewestFirst(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	step := 0
	ledger.SetClock(func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	})

	for _, id := range []string{"G1", "G2", "G3"} {
		if _, err := ledger.Append(ctx, id, "guest "+id); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	list, err := ledger.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Timestamp < list[i].Timestamp {
			t.Fatalf("list not sorted newest first: %v", list)
		}
	}

	recent, err := ledger.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "G3" {
		t.Fatalf("expected newest 2 starting with G3, got %v", recent)
	}
}
