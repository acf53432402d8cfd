package checkins

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qr-checkin/backend/internal/models"
)

var (
	// ErrNotFound is returned when no check-in exists for the guest.
	ErrNotFound = errors.New("checkin not found")
	// ErrAlreadyCheckedIn is returned by Append when a record already exists
	// for the guest. The existing record is returned alongside it.
	ErrAlreadyCheckedIn = errors.New("guest already checked in")
)

// Ledger is the append-only check-in record store. Append must be atomic
// insert-if-absent: the uniqueness guarantee lives in the store itself, never
// in caller-side check-then-act.
type Ledger interface {
	Find(ctx context.Context, guestID string) (*models.Checkin, error)
	ListAll(ctx context.Context) ([]models.Checkin, error)
	Recent(ctx context.Context, limit int) ([]models.Checkin, error)
	Append(ctx context.Context, guestID, name string) (*models.Checkin, error)
	Count(ctx context.Context) (int, error)
}

// Repository implements the ledger on PostgreSQL. The primary key on guest_id
// enforces at-most-once.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a check-in ledger repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Find returns the check-in for a guest, or ErrNotFound.
func (r *Repository) Find(ctx context.Context, guestID string) (*models.Checkin, error) {
	const q = `SELECT guest_id, name, checkin_time, timestamp_ms FROM checkins WHERE guest_id = $1`
	var rec models.Checkin
	err := r.pool.QueryRow(ctx, q, guestID).Scan(&rec.ID, &rec.Name, &rec.CheckinTime, &rec.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListAll returns every check-in, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Checkin, error) {
	return r.list(ctx, 0)
}

// Recent returns the newest check-ins up to limit.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.Checkin, error) {
	return r.list(ctx, limit)
}

func (r *Repository) list(ctx context.Context, limit int) ([]models.Checkin, error) {
	q := `SELECT guest_id, name, checkin_time, timestamp_ms FROM checkins ORDER BY timestamp_ms DESC`
	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = r.pool.Query(ctx, q+` LIMIT $1`, limit)
	} else {
		rows, err = r.pool.Query(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Checkin
	for rows.Next() {
		var rec models.Checkin
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CheckinTime, &rec.Timestamp); err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Append records a check-in if and only if none exists for the guest.
// ON CONFLICT DO NOTHING makes the insert atomic under concurrent requests;
// the loser reads back the winner's record and gets ErrAlreadyCheckedIn.
func (r *Repository) Append(ctx context.Context, guestID, name string) (*models.Checkin, error) {
	rec := models.NewCheckin(guestID, name, time.Now())
	const q = `INSERT INTO checkins (guest_id, name, checkin_time, timestamp_ms)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guest_id) DO NOTHING
		RETURNING guest_id`
	var inserted string
	err := r.pool.QueryRow(ctx, q, rec.ID, rec.Name, rec.CheckinTime, rec.Timestamp).Scan(&inserted)
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	existing, ferr := r.Find(ctx, guestID)
	if ferr != nil {
		return nil, ferr
	}
	return existing, ErrAlreadyCheckedIn
}

// Count returns the total number of check-ins.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM checkins`).Scan(&n)
	return n, err
}
