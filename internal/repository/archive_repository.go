package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/trainee-seat-reservation/internal/model"
)

// ArchiveRepo migrates removed trainees and their bookings into the
// historical tables. The whole removal runs in one transaction so a
// user is never deleted while live bookings still reference them.
type ArchiveRepo struct {
	db *sql.DB
}

// NewArchiveRepo returns a new ArchiveRepo bound to the given database.
func NewArchiveRepo(db *sql.DB) *ArchiveRepo { return &ArchiveRepo{db: db} }

// RemoveUser archives the user to past_trainees, copies all their live
// bookings to past_bookings, deletes the live bookings and finally the
// user row. Returns ErrUserNotFound when the user does not exist.
func (r *ArchiveRepo) RemoveUser(ctx context.Context, userID uint64) error {
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

	var u model.User
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(nic_no, ''), COALESCE(contact_no, ''), email
		 FROM users WHERE id = ?`, userID).
		Scan(&u.ID, &u.Name, &u.NicNo, &u.ContactNo, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO past_trainees (name, nic_no, contact_no, email) VALUES (?, ?, ?, ?)`,
		u.Name, u.NicNo, u.ContactNo, u.Email); err != nil {
		return err
	}

	// Bookings migrate with the snapshot they already carry.
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO past_bookings
		   (user_id, user_name, user_email, user_contact_no, user_nic_no,
		    booking_date, layout_name, seat_id, attended)
		 SELECT user_id, user_name, user_email, user_contact_no, user_nic_no,
		        booking_date, layout_name, seat_id, attended
		 FROM bookings WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bookings WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListTrainees returns all archived trainees, most recent first.
func (r *ArchiveRepo) ListTrainees(ctx context.Context) ([]model.ArchivedTrainee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, nic_no, contact_no, email, removed_at
		 FROM past_trainees ORDER BY removed_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ArchivedTrainee, 0)
	for rows.Next() {
		var t model.ArchivedTrainee
		if err := rows.Scan(&t.ID, &t.Name, &t.NicNo, &t.ContactNo, &t.Email, &t.RemovedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListBookings returns all archived bookings, most recent first.
func (r *ArchiveRepo) ListBookings(ctx context.Context) ([]model.ArchivedBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, user_name, user_email, user_contact_no, user_nic_no,
		        booking_date, layout_name, seat_id, attended, archived_at
		 FROM past_bookings ORDER BY archived_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ArchivedBooking, 0)
	for rows.Next() {
		var b model.ArchivedBooking
		var d sql.NullTime
		if err := rows.Scan(&b.ID, &b.UserID, &b.UserName, &b.UserEmail, &b.UserContactNo,
			&b.UserNicNo, &d, &b.LayoutName, &b.SeatID, &b.Attended, &b.ArchivedAt); err != nil {
			return nil, err
		}
		if d.Valid {
			b.BookingDate = d.Time.Format(dateLayout)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
