package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/trainee-seat-reservation/internal/database"
	"github.com/iliyamo/trainee-seat-reservation/internal/model"
)

// LayoutRepo provides CRUD operations for layouts and their embedded
// seat slots. Slots live in the layout_seats table and are always
// written together with their layout inside a transaction.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo returns a new LayoutRepo bound to the given database.
func NewLayoutRepo(db *sql.DB) *LayoutRepo { return &LayoutRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *LayoutRepo) DB() *sql.DB { return r.db }

// Create inserts a layout and its seat slots. On success the layout's
// ID is populated. Returns ErrLayoutExists when the name is taken.
func (r *LayoutRepo) Create(ctx context.Context, l *model.Layout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO layouts (name) VALUES (?)`, l.Name)
	if err != nil {
		if idx, ok := database.DuplicateKey(err); ok && idx == "uq_layout_name" {
			return ErrLayoutExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	if err := insertSlotsTx(ctx, tx, l.ID, l.Seats); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update replaces a layout's name and seat slots. Bookings referencing
// the layout keep their name snapshot; only future lookups see the new
// slots. Returns ErrLayoutNotFound when the id does not exist.
func (r *LayoutRepo) Update(ctx context.Context, l *model.Layout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE layouts SET name = ? WHERE id = ?`, l.Name, l.ID)
	if err != nil {
		if idx, ok := database.DuplicateKey(err); ok && idx == "uq_layout_name" {
			return ErrLayoutExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// UPDATE reports zero rows both for a missing id and for an
		// unchanged name; probe existence to tell them apart.
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM layouts WHERE id = ?`, l.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrLayoutNotFound
			}
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM layout_seats WHERE layout_id = ?`, l.ID); err != nil {
		return err
	}
	if err := insertSlotsTx(ctx, tx, l.ID, l.Seats); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// insertSlotsTx bulk-inserts seat slots for a layout in one statement.
func insertSlotsTx(ctx context.Context, tx *sql.Tx, layoutID uint64, seats []model.SeatSlot) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO layout_seats (layout_id, seat_id, grid_row, grid_col) VALUES `
	args := make([]interface{}, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, layoutID, s.SeatID, s.Row, s.Col)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID returns a layout with its seat slots ordered by grid
// position. Returns ErrLayoutNotFound when no row matches.
func (r *LayoutRepo) GetByID(ctx context.Context, id uint64) (*model.Layout, error) {
	const q = `SELECT id, name, created_at, updated_at FROM layouts WHERE id = ?`
	var l model.Layout
	err := r.db.QueryRowContext(ctx, q, id).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	seats, err := r.slots(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.Seats = seats
	return &l, nil
}

// GetByName returns a layout by its unique name.
func (r *LayoutRepo) GetByName(ctx context.Context, name string) (*model.Layout, error) {
	const q = `SELECT id, name, created_at, updated_at FROM layouts WHERE name = ?`
	var l model.Layout
	err := r.db.QueryRowContext(ctx, q, name).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	seats, err := r.slots(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.Seats = seats
	return &l, nil
}

func (r *LayoutRepo) slots(ctx context.Context, layoutID uint64) ([]model.SeatSlot, error) {
	const q = `SELECT seat_id, grid_row, grid_col FROM layout_seats
	           WHERE layout_id = ? ORDER BY grid_row, grid_col`
	rows, err := r.db.QueryContext(ctx, q, layoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.SeatSlot, 0)
	for rows.Next() {
		var s model.SeatSlot
		if err := rows.Scan(&s.SeatID, &s.Row, &s.Col); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// List returns all layouts with their seat slots. Slots for every
// layout are fetched in a single IN query and stitched back by id.
func (r *LayoutRepo) List(ctx context.Context) ([]model.Layout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM layouts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	layouts := make([]model.Layout, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var l model.Layout
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		l.Seats = []model.SeatSlot{}
		index[l.ID] = len(layouts)
		layouts = append(layouts, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return layouts, nil
	}
	ids := make([]interface{}, 0, len(layouts))
	placeholders := make([]string, 0, len(layouts))
	for _, l := range layouts {
		ids = append(ids, l.ID)
		placeholders = append(placeholders, "?")
	}
	slotQ := `SELECT layout_id, seat_id, grid_row, grid_col FROM layout_seats
	          WHERE layout_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY layout_id, grid_row, grid_col`
	srows, err := r.db.QueryContext(ctx, slotQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var lid uint64
		var s model.SeatSlot
		if err := srows.Scan(&lid, &s.SeatID, &s.Row, &s.Col); err != nil {
			return nil, err
		}
		if i, ok := index[lid]; ok {
			layouts[i].Seats = append(layouts[i].Seats, s)
		}
	}
	return layouts, srows.Err()
}

// LayoutName pairs a layout id with its display name.
type LayoutName struct {
	ID   uint64 `json:"id"`
	Name string `json:"layoutName"`
}

// ListNames returns just the id and name of every layout, for pickers.
func (r *LayoutRepo) ListNames(ctx context.Context) ([]LayoutName, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM layouts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make([]LayoutName, 0)
	for rows.Next() {
		var n LayoutName
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Delete removes a layout; its slots go with it via ON DELETE CASCADE.
// Bookings and withdrawal marks are intentionally left untouched.
func (r *LayoutRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLayoutNotFound
	}
	return nil
}
