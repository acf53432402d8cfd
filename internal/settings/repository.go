package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qr-checkin/backend/internal/models"
)

// Store persists the singleton event settings record.
type Store interface {
	Get(ctx context.Context) (models.EventSettings, error)
	Upsert(ctx context.Context, s models.EventSettings) error
}

// Repository handles event settings persistence in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an event settings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get returns the stored settings, or the defaults when no row exists yet.
func (r *Repository) Get(ctx context.Context) (models.EventSettings, error) {
	const q = `SELECT id, checkin_enabled, rsvp_enabled, event_date, event_time,
			event_location, require_confirmation, allow_walk_in
		FROM event_settings WHERE id = $1`
	var s models.EventSettings
	err := r.pool.QueryRow(ctx, q, models.EventSettingsID).Scan(
		&s.ID, &s.CheckinEnabled, &s.RSVPEnabled, &s.EventDate, &s.EventTime,
		&s.EventLocation, &s.RequireConfirmation, &s.AllowWalkIn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultEventSettings(), nil
		}
		return models.EventSettings{}, err
	}
	return s, nil
}

// Upsert writes the singleton row, last write wins.
func (r *Repository) Upsert(ctx context.Context, s models.EventSettings) error {
	const q = `INSERT INTO event_settings (id, checkin_enabled, rsvp_enabled,
			event_date, event_time, event_location, require_confirmation, allow_walk_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			checkin_enabled = EXCLUDED.checkin_enabled,
			rsvp_enabled = EXCLUDED.rsvp_enabled,
			event_date = EXCLUDED.event_date,
			event_time = EXCLUDED.event_time,
			event_location = EXCLUDED.event_location,
			require_confirmation = EXCLUDED.require_confirmation,
			allow_walk_in = EXCLUDED.allow_walk_in,
			updated_at = NOW()`
	_, err := r.pool.Exec(ctx, q,
		models.EventSettingsID, s.CheckinEnabled, s.RSVPEnabled,
		s.EventDate, s.EventTime, s.EventLocation, s.RequireConfirmation, s.AllowWalkIn,
	)
	return err
}
