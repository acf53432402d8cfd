package settings

import (
	"context"
	"testing"

	"github.com/qr-checkin/backend/internal/models"
)

func TestGetDefaultsWhenUnset(t *testing.T) {
	svc := NewService(NewMemoryStore())
	s, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.CheckinEnabled {
		t.Fatal("check-in must start disabled")
	}
	if !s.RSVPEnabled {
		t.Fatal("RSVP must start enabled")
	}
	if !s.RequireConfirmation || s.AllowWalkIn {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestToggleCheckinFlips(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	s, err := svc.ToggleCheckin(ctx)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !s.CheckinEnabled {
		t.Fatal("first toggle should enable check-in")
	}
	s, err = svc.ToggleCheckin(ctx)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.CheckinEnabled {
		t.Fatal("second toggle should disable check-in")
	}
}

func TestUpdateMergesOverExisting(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	loc := "Grand Ballroom"
	if _, err := svc.Update(ctx, models.EventSettingsUpdate{EventLocation: &loc}); err != nil {
		t.Fatalf("update: %v", err)
	}

	enabled := true
	s, err := svc.Update(ctx, models.EventSettingsUpdate{CheckinEnabled: &enabled})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !s.CheckinEnabled {
		t.Fatal("expected checkinEnabled true")
	}
	if s.EventLocation != loc {
		t.Fatalf("unsupplied field must keep prior value, got %q", s.EventLocation)
	}
}
