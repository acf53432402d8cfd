package rsvps

import (
	"context"
	"errors"
	"time"

	"github.com/qr-checkin/backend/internal/models"
)

// AttendanceRequest is the payload of an attendance response.
type AttendanceRequest struct {
	Attendance          string `json:"attendance"`
	DietaryRequirements string `json:"dietaryRequirements"`
	PlusOne             bool   `json:"plusOne"`
	PlusOneName         string `json:"plusOneName"`
	Notes               string `json:"notes"`
}

// Tracker applies attendance responses to the RSVP store.
type Tracker struct {
	store Store
	now   func() time.Time
}

// NewTracker creates an RSVP tracker.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// RecordAttendance upserts the guest's RSVP. Attendance "yes" confirms; any
// other value declines. Status may flip repeatedly, last write wins.
func (t *Tracker) RecordAttendance(ctx context.Context, guestID string, req AttendanceRequest) (*models.RSVP, error) {
	status := models.RSVPStatusDeclined
	if req.Attendance == models.AttendanceYes {
		status = models.RSVPStatusConfirmed
	}
	confirmedAt := t.now().UTC()
	rec := models.RSVP{
		GuestID:             guestID,
		Status:              status,
		Attendance:          req.Attendance,
		ConfirmedAt:         &confirmedAt,
		DietaryRequirements: req.DietaryRequirements,
		PlusOne:             req.PlusOne,
		PlusOneName:         req.PlusOneName,
		Notes:               req.Notes,
	}
	if err := t.store.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns the guest's RSVP, defaulting to a pending record when absent.
func (t *Tracker) Get(ctx context.Context, guestID string) (*models.RSVP, error) {
	rec, err := t.store.Get(ctx, guestID)
	if errors.Is(err, ErrNotFound) {
		return &models.RSVP{GuestID: guestID, Status: models.RSVPStatusPending}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
