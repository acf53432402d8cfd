package rsvps

import (
	"context"
	"testing"
	"time"

	"github.com/qr-checkin/backend/internal/models"
)

func TestRecordAttendanceStatusMapping(t *testing.T) {
	tests := []struct {
		attendance string
		want       models.RSVPStatus
	}{
		{models.AttendanceYes, models.RSVPStatusConfirmed},
		{models.AttendanceNo, models.RSVPStatusDeclined},
		{models.AttendanceMaybe, models.RSVPStatusDeclined},
		{"", models.RSVPStatusDeclined},
	}
	for _, tc := range tests {
		t.Run("attendance "+tc.attendance, func(t *testing.T) {
			tracker := NewTracker(NewMemoryStore())
			rec, err := tracker.RecordAttendance(context.Background(), "G1", AttendanceRequest{Attendance: tc.attendance})
			if err != nil {
				t.Fatalf("record: %v", err)
			}
			if rec.Status != tc.want {
				t.Fatalf("attendance %q: expected status %q, got %q", tc.attendance, tc.want, rec.Status)
			}
			if rec.ConfirmedAt == nil {
				t.Fatal("expected ConfirmedAt to be set")
			}
		})
	}
}

func TestRecordAttendanceUpsertsNotAppends(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	if _, err := tracker.RecordAttendance(ctx, "G1", AttendanceRequest{Attendance: models.AttendanceYes}); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if _, err := tracker.RecordAttendance(ctx, "G1", AttendanceRequest{Attendance: models.AttendanceNo}); err != nil {
		t.Fatalf("second record: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 1 {
		t.Fatalf("expected exactly 1 RSVP record, got %d", stats.Total)
	}
	rec, err := store.Get(ctx, "G1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != models.RSVPStatusDeclined {
		t.Fatalf("last write must win, expected declined, got %q", rec.Status)
	}
}

func TestRecordAttendanceSetsConfirmedAtFromClock(t *testing.T) {
	tracker := NewTracker(NewMemoryStore())
	fixed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return fixed }

	rec, err := tracker.RecordAttendance(context.Background(), "G1", AttendanceRequest{Attendance: models.AttendanceYes})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !rec.ConfirmedAt.Equal(fixed) {
		t.Fatalf("expected ConfirmedAt %v, got %v", fixed, rec.ConfirmedAt)
	}
}

func TestGetDefaultsToPending(t *testing.T) {
	tracker := NewTracker(NewMemoryStore())
	rec, err := tracker.Get(context.Background(), "G1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != models.RSVPStatusPending {
		t.Fatalf("expected pending for absent RSVP, got %q", rec.Status)
	}
}
