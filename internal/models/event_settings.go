package models

// EventSettingsID is the fixed key of the singleton settings record.
const EventSettingsID = "main"

// EventSettings is the single global record gating check-in and RSVP.
type EventSettings struct {
	ID                  string `json:"id"`
	CheckinEnabled      bool   `json:"checkinEnabled"`
	RSVPEnabled         bool   `json:"rsvpEnabled"`
	EventDate           string `json:"eventDate,omitempty"`
	EventTime           string `json:"eventTime,omitempty"`
	EventLocation       string `json:"eventLocation,omitempty"`
	RequireConfirmation bool   `json:"requireConfirmation"`
	AllowWalkIn         bool   `json:"allowWalkIn"`
}

// DefaultEventSettings are returned when no settings record has been stored
// yet: check-in starts closed, RSVP open.
func DefaultEventSettings() EventSettings {
	return EventSettings{
		ID:                  EventSettingsID,
		CheckinEnabled:      false,
		RSVPEnabled:         true,
		RequireConfirmation: true,
		AllowWalkIn:         false,
	}
}

// EventSettingsUpdate carries the optional fields of a settings update; nil
// fields are left unchanged.
type EventSettingsUpdate struct {
	CheckinEnabled      *bool   `json:"checkinEnabled"`
	RSVPEnabled         *bool   `json:"rsvpEnabled"`
	EventDate           *string `json:"eventDate"`
	EventTime           *string `json:"eventTime"`
	EventLocation       *string `json:"eventLocation"`
	RequireConfirmation *bool   `json:"requireConfirmation"`
	AllowWalkIn         *bool   `json:"allowWalkIn"`
}
