package rsvps

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qr-checkin/backend/internal/models"
)

// ErrNotFound is returned when a guest has no RSVP yet.
var ErrNotFound = errors.New("rsvp not found")

// Store persists RSVP records, at most one per guest.
type Store interface {
	Get(ctx context.Context, guestID string) (*models.RSVP, error)
	Upsert(ctx context.Context, r models.RSVP) error
	Stats(ctx context.Context) (models.RSVPStats, error)
}

// Repository handles RSVP persistence in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an RSVP repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get returns the RSVP for a guest, or ErrNotFound.
func (r *Repository) Get(ctx context.Context, guestID string) (*models.RSVP, error) {
	const q = `SELECT guest_id, status, attendance, confirmed_at, dietary_requirements,
			plus_one, plus_one_name, notes
		FROM rsvps WHERE guest_id = $1`
	var rec models.RSVP
	err := r.pool.QueryRow(ctx, q, guestID).Scan(
		&rec.GuestID, &rec.Status, &rec.Attendance, &rec.ConfirmedAt,
		&rec.DietaryRequirements, &rec.PlusOne, &rec.PlusOneName, &rec.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert writes the RSVP for a guest, last write wins.
func (r *Repository) Upsert(ctx context.Context, rec models.RSVP) error {
	const q = `INSERT INTO rsvps (guest_id, status, attendance, confirmed_at,
			dietary_requirements, plus_one, plus_one_name, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (guest_id) DO UPDATE SET
			status = EXCLUDED.status,
			attendance = EXCLUDED.attendance,
			confirmed_at = EXCLUDED.confirmed_at,
			dietary_requirements = EXCLUDED.dietary_requirements,
			plus_one = EXCLUDED.plus_one,
			plus_one_name = EXCLUDED.plus_one_name,
			notes = EXCLUDED.notes,
			updated_at = NOW()`
	_, err := r.pool.Exec(ctx, q,
		rec.GuestID, rec.Status, rec.Attendance, rec.ConfirmedAt,
		rec.DietaryRequirements, rec.PlusOne, rec.PlusOneName, rec.Notes,
	)
	return err
}

// Stats returns RSVP totals grouped by status.
func (r *Repository) Stats(ctx context.Context) (models.RSVPStats, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM rsvps GROUP BY status`)
	if err != nil {
		return models.RSVPStats{}, err
	}
	defer rows.Close()
	var stats models.RSVPStats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return models.RSVPStats{}, err
		}
		stats.Total += count
		switch models.RSVPStatus(status) {
		case models.RSVPStatusConfirmed:
			stats.Confirmed = count
		case models.RSVPStatusDeclined:
			stats.Declined = count
		case models.RSVPStatusPending:
			stats.Pending = count
		}
	}
	return stats, rows.Err()
}
