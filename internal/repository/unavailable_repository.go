package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/trainee-seat-reservation/internal/database"
	"github.com/iliyamo/trainee-seat-reservation/internal/model"
)

// UnavailableRepo persists temporary seat withdrawals. A unique index
// on (layout_id, mark_date, seat_id) keeps marks idempotent: marking
// the same seat twice is a no-op, not a duplicate row.
type UnavailableRepo struct {
	db *sql.DB
}

// NewUnavailableRepo returns a new UnavailableRepo bound to the given database.
func NewUnavailableRepo(db *sql.DB) *UnavailableRepo { return &UnavailableRepo{db: db} }

// Create inserts a withdrawal mark. Re-marking an already withdrawn
// seat succeeds without effect.
func (r *UnavailableRepo) Create(ctx context.Context, m *model.UnavailableMark) error {
	const q = `INSERT INTO unavailable_seats (mark_date, layout_id, layout_name, seat_id)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Date, m.LayoutID, m.LayoutName, m.SeatID)
	if err != nil {
		if idx, ok := database.DuplicateKey(err); ok && idx == "uq_mark" {
			return nil
		}
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		m.ID = uint64(id)
	}
	return nil
}

// Delete removes the mark for the canonical (date, layout, seat) key.
// All make-available entry points use this one key. Returns
// ErrMarkNotFound when no row matched.
func (r *UnavailableRepo) Delete(ctx context.Context, date string, layoutID uint64, seatID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM unavailable_seats WHERE mark_date = ? AND layout_id = ? AND seat_id = ?`,
		date, layoutID, seatID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMarkNotFound
	}
	return nil
}

// SeatIDsByLayoutAndDate returns the withdrawn seat ids for a layout
// and date. Used by the availability partition.
func (r *UnavailableRepo) SeatIDsByLayoutAndDate(ctx context.Context, layoutID uint64, date string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_id FROM unavailable_seats WHERE layout_id = ? AND mark_date = ?`,
		layoutID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UnavailableRepo) list(ctx context.Context, where string, args ...interface{}) ([]model.UnavailableMark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, mark_date, layout_id, layout_name, seat_id FROM unavailable_seats `+where,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.UnavailableMark, 0)
	for rows.Next() {
		var m model.UnavailableMark
		var d time.Time
		if err := rows.Scan(&m.ID, &d, &m.LayoutID, &m.LayoutName, &m.SeatID); err != nil {
			return nil, err
		}
		m.Date = d.Format(dateLayout)
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListByLayoutAndDate returns the marks for one layout on one date.
func (r *UnavailableRepo) ListByLayoutAndDate(ctx context.Context, layoutID uint64, date string) ([]model.UnavailableMark, error) {
	return r.list(ctx, `WHERE layout_id = ? AND mark_date = ? ORDER BY seat_id`, layoutID, date)
}

// ListByDate returns the marks across all layouts on one date.
func (r *UnavailableRepo) ListByDate(ctx context.Context, date string) ([]model.UnavailableMark, error) {
	return r.list(ctx, `WHERE mark_date = ? ORDER BY layout_name, seat_id`, date)
}

// ListAll returns every withdrawal mark.
func (r *UnavailableRepo) ListAll(ctx context.Context) ([]model.UnavailableMark, error) {
	return r.list(ctx, `ORDER BY mark_date, layout_name, seat_id`)
}
