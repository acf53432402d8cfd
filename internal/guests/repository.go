package guests

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qr-checkin/backend/internal/models"
)

// ErrNotFound is returned when no guest exists for the given code.
var ErrNotFound = errors.New("guest not found")

// Store is the guest directory: lookups by code and profile writes. The pgx
// Repository backs production; MemoryStore backs tests.
type Store interface {
	Get(ctx context.Context, id string) (*models.Guest, error)
	List(ctx context.Context) ([]models.Guest, error)
	Upsert(ctx context.Context, g models.Guest) error
	UpdateProfile(ctx context.Context, id string, upd models.GuestProfileUpdate) error
}

// Repository handles guest persistence in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a guests repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NormalizeID strips surrounding whitespace from a guest code. Lookups are
// case-sensitive beyond that.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

// Get returns the guest with the given code, or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*models.Guest, error) {
	const q = `SELECT id, salutation, name, position, company FROM guests WHERE id = $1`
	var g models.Guest
	err := r.pool.QueryRow(ctx, q, NormalizeID(id)).
		Scan(&g.ID, &g.Salutation, &g.Name, &g.Position, &g.Company)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// List returns all guests ordered by name (for qrgen and admin listing).
func (r *Repository) List(ctx context.Context) ([]models.Guest, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, salutation, name, position, company FROM guests ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Guest
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.ID, &g.Salutation, &g.Name, &g.Position, &g.Company); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// Upsert inserts or replaces a guest record (used by the CSV seeder).
func (r *Repository) Upsert(ctx context.Context, g models.Guest) error {
	const q = `INSERT INTO guests (id, salutation, name, position, company)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			salutation = EXCLUDED.salutation,
			name = EXCLUDED.name,
			position = EXCLUDED.position,
			company = EXCLUDED.company,
			updated_at = NOW()`
	_, err := r.pool.Exec(ctx, q, NormalizeID(g.ID), g.Salutation, g.Name, g.Position, g.Company)
	return err
}

// UpdateProfile applies a partial update; nil fields keep their prior values.
// No field validation happens here: completeness is enforced at check-in time.
func (r *Repository) UpdateProfile(ctx context.Context, id string, upd models.GuestProfileUpdate) error {
	const q = `UPDATE guests SET
			salutation = COALESCE($2, salutation),
			name = COALESCE($3, name),
			position = COALESCE($4, position),
			company = COALESCE($5, company),
			updated_at = NOW()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, NormalizeID(id), upd.Salutation, upd.Name, upd.Position, upd.Company)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
