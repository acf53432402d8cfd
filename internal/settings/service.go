package settings

import (
	"context"

	"github.com/qr-checkin/backend/internal/models"
)

// Service wraps the settings store with toggle and merge semantics. Toggle and
// Update are read-modify-write: they are administrative, low-frequency actions
// where last write wins is acceptable.
type Service struct {
	store Store
}

// NewService creates a settings service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the current settings (defaults when unset).
func (s *Service) Get(ctx context.Context) (models.EventSettings, error) {
	return s.store.Get(ctx)
}

// ToggleCheckin flips the global check-in gate and returns the new settings.
func (s *Service) ToggleCheckin(ctx context.Context) (models.EventSettings, error) {
	cur, err := s.store.Get(ctx)
	if err != nil {
		return models.EventSettings{}, err
	}
	cur.CheckinEnabled = !cur.CheckinEnabled
	if err := s.store.Upsert(ctx, cur); err != nil {
		return models.EventSettings{}, err
	}
	return cur, nil
}

// Update merges the supplied fields over the existing settings and stores the
// result.
func (s *Service) Update(ctx context.Context, upd models.EventSettingsUpdate) (models.EventSettings, error) {
	cur, err := s.store.Get(ctx)
	if err != nil {
		return models.EventSettings{}, err
	}
	if upd.CheckinEnabled != nil {
		cur.CheckinEnabled = *upd.CheckinEnabled
	}
	if upd.RSVPEnabled != nil {
		cur.RSVPEnabled = *upd.RSVPEnabled
	}
	if upd.EventDate != nil {
		cur.EventDate = *upd.EventDate
	}
	if upd.EventTime != nil {
		cur.EventTime = *upd.EventTime
	}
	if upd.EventLocation != nil {
		cur.EventLocation = *upd.EventLocation
	}
	if upd.RequireConfirmation != nil {
		cur.RequireConfirmation = *upd.RequireConfirmation
	}
	if upd.AllowWalkIn != nil {
		cur.AllowWalkIn = *upd.AllowWalkIn
	}
	if err := s.store.Upsert(ctx, cur); err != nil {
		return models.EventSettings{}, err
	}
	return cur, nil
}
