package models

import "time"

// Checkin marks a guest's one-time arrival. ID equals the guest's code and the
// name is a snapshot taken at check-in time. At most one record exists per
// guest id, ever; records are immutable once written.
type Checkin struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CheckinTime time.Time `json:"checkinTime"`
	Timestamp   int64     `json:"timestamp"` // epoch millis, sort key
}

// NewCheckin builds a check-in record for a guest at the given instant.
func NewCheckin(guestID, name string, at time.Time) Checkin {
	return Checkin{
		ID:          guestID,
		Name:        name,
		CheckinTime: at.UTC(),
		Timestamp:   at.UnixMilli(),
	}
}
