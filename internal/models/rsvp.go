package models

import "time"

// RSVPStatus is a guest's response state.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusConfirmed RSVPStatus = "confirmed"
	RSVPStatusDeclined  RSVPStatus = "declined"
)

// Attendance values accepted from the RSVP form.
const (
	AttendanceYes   = "yes"
	AttendanceNo    = "no"
	AttendanceMaybe = "maybe"
)

// RSVP records a guest's stated intention to attend, independent of actual
// check-in. At most one RSVP exists per guest (upsert by guestId).
type RSVP struct {
	GuestID             string     `json:"guestId"`
	Status              RSVPStatus `json:"status"`
	Attendance          string     `json:"attendance"`
	ConfirmedAt         *time.Time `json:"confirmedAt,omitempty"`
	DietaryRequirements string     `json:"dietaryRequirements,omitempty"`
	PlusOne             bool       `json:"plusOne"`
	PlusOneName         string     `json:"plusOneName,omitempty"`
	Notes               string     `json:"notes,omitempty"`
}

// RSVPStats aggregates RSVP records by status.
type RSVPStats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Declined  int `json:"declined"`
	Pending   int `json:"pending"`
}
