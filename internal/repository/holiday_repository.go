package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/trainee-seat-reservation/internal/database"
	"github.com/iliyamo/trainee-seat-reservation/internal/model"
)

// HolidayRepo persists system-wide non-bookable dates. Dates are
// unique; adding a second holiday for the same date is a conflict.
type HolidayRepo struct {
	db *sql.DB
}

// NewHolidayRepo returns a new HolidayRepo bound to the given database.
func NewHolidayRepo(db *sql.DB) *HolidayRepo { return &HolidayRepo{db: db} }

// Create inserts a holiday. Returns ErrHolidayExists when the date
// already has one.
func (r *HolidayRepo) Create(ctx context.Context, h *model.Holiday) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO holidays (holiday_date, message) VALUES (?, ?)`,
		h.Date, h.Message)
	if err != nil {
		if idx, ok := database.DuplicateKey(err); ok && idx == "uq_holiday" {
			return ErrHolidayExists
		}
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		h.ID = uint64(id)
	}
	return nil
}

// List returns all holidays ordered by date.
func (r *HolidayRepo) List(ctx context.Context) ([]model.Holiday, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, holiday_date, message FROM holidays ORDER BY holiday_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Holiday, 0)
	for rows.Next() {
		var h model.Holiday
		var d time.Time
		if err := rows.Scan(&h.ID, &d, &h.Message); err != nil {
			return nil, err
		}
		h.Date = d.Format(dateLayout)
		out = append(out, h)
	}
	return out, rows.Err()
}

// DeleteByDate removes the holiday for a date. Returns
// ErrHolidayNotFound when no row matched.
func (r *HolidayRepo) DeleteByDate(ctx context.Context, date string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE holiday_date = ?`, date)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHolidayNotFound
	}
	return nil
}
