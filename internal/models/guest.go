package models

import "strings"

// Guest is an invitee identified by the unique code embedded in their QR code.
// The code is the only key used for lookups across all collections.
type Guest struct {
	ID         string `json:"id"`
	Salutation string `json:"salutation"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Company    string `json:"company"`
}

// RequiredProfileFields are the fields that must be non-empty before check-in.
var RequiredProfileFields = []string{"salutation", "name", "position", "company"}

// MissingProfileFields returns the required fields that are empty after trimming.
func (g Guest) MissingProfileFields() []string {
	var missing []string
	for _, f := range RequiredProfileFields {
		var v string
		switch f {
		case "salutation":
			v = g.Salutation
		case "name":
			v = g.Name
		case "position":
			v = g.Position
		case "company":
			v = g.Company
		}
		if strings.TrimSpace(v) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// GuestProfileUpdate carries the optional fields of a partial profile update.
// Nil fields keep their prior values.
type GuestProfileUpdate struct {
	Salutation *string `json:"salutation"`
	Name       *string `json:"name"`
	Position   *string `json:"position"`
	Company    *string `json:"company"`
}
