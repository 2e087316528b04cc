package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/trainee-seat-reservation/internal/database"
	"github.com/iliyamo/trainee-seat-reservation/internal/model"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// BookingRepo provides persistence for bookings. The two booking
// invariants (one booking per seat per layout per date, one booking
// per user per layout per date) are unique indexes on the table, so
// Create is the single point where conflicts are detected.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, user_id, user_name, user_email, user_contact_no, user_nic_no,
	booking_date, layout_id, layout_name, seat_id, attended, created_at`

// scanBooking reads one booking row. booking_date arrives as time.Time
// because the driver is configured with parseTime; it is reduced back
// to a plain YYYY-MM-DD string.
func scanBooking(row interface{ Scan(...interface{}) error }) (*model.Booking, error) {
	var b model.Booking
	var d time.Time
	if err := row.Scan(
		&b.ID, &b.UserID, &b.UserName, &b.UserEmail, &b.UserContactNo, &b.UserNicNo,
		&d, &b.LayoutID, &b.LayoutName, &b.SeatID, &b.Attended, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.BookingDate = d.Format(dateLayout)
	return &b, nil
}

// Create inserts a booking. The insert is the conflict check: a
// violation of uq_booking_seat means someone else holds the seat and a
// violation of uq_booking_user means the user already booked that
// layout and date. On success the booking's ID is populated.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (user_id, user_name, user_email, user_contact_no, user_nic_no,
	            booking_date, layout_id, layout_name, seat_id, attended)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`
	res, err := r.db.ExecContext(ctx, q,
		b.UserID, b.UserName, b.UserEmail, b.UserContactNo, b.UserNicNo,
		b.BookingDate, b.LayoutID, b.LayoutName, b.SeatID)
	if err != nil {
		if idx, ok := database.DuplicateKey(err); ok {
			switch idx {
			case "uq_booking_seat":
				return ErrSeatTaken
			case "uq_booking_user":
				return ErrDuplicateUserBooking
			}
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Attended = false
	return nil
}

// GetByID returns a booking by identity.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// Delete removes a booking by identity.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// SeatIDsByLayoutAndDate returns the seat ids reserved for a layout on
// a date. Used by the availability partition.
func (r *BookingRepo) SeatIDsByLayoutAndDate(ctx context.Context, layoutID uint64, date string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_id FROM bookings WHERE layout_id = ? AND booking_date = ?`,
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

func (r *BookingRepo) list(ctx context.Context, where string, args ...interface{}) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingCols+` FROM bookings `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// ListByLayoutAndDate returns the booking history for a (date, layout).
func (r *BookingRepo) ListByLayoutAndDate(ctx context.Context, layoutID uint64, date string) ([]model.Booking, error) {
	return r.list(ctx, `WHERE layout_id = ? AND booking_date = ? ORDER BY seat_id`, layoutID, date)
}

// ListByUser returns all bookings held by a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx, `WHERE user_id = ? ORDER BY booking_date DESC, id DESC`, userID)
}

// ListByUserAndDate returns a user's bookings on a specific date.
func (r *BookingRepo) ListByUserAndDate(ctx context.Context, userID uint64, date string) ([]model.Booking, error) {
	return r.list(ctx, `WHERE user_id = ? AND booking_date = ? ORDER BY id`, userID, date)
}

// ListAll returns every live booking.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, `ORDER BY booking_date DESC, layout_name, seat_id`)
}

// ExistsForUser reports whether the user already holds a booking on the
// given layout and date. This is the pre-flight check clients call
// before showing the seat picker; Reserve does not rely on it.
func (r *BookingRepo) ExistsForUser(ctx context.Context, userID, layoutID uint64, date string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM bookings WHERE user_id = ? AND layout_id = ? AND booking_date = ? LIMIT 1`,
		userID, layoutID, date).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetAttendance flips the attended flag on a booking. The flag is
// reversible until the booking is deleted.
func (r *BookingRepo) SetAttendance(ctx context.Context, id uint64, attended bool) (*model.Booking, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET attended = ? WHERE id = ?`, attended, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		// Zero rows can also mean the flag already had that value.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// AttendanceByDate splits the bookings of a date by attendance status.
func (r *BookingRepo) AttendanceByDate(ctx context.Context, date string) (attended, notAttended []model.Booking, err error) {
	attended, err = r.list(ctx, `WHERE booking_date = ? AND attended = 1 ORDER BY layout_name, seat_id`, date)
	if err != nil {
		return nil, nil, err
	}
	notAttended, err = r.list(ctx, `WHERE booking_date = ? AND attended = 0 ORDER BY layout_name, seat_id`, date)
	if err != nil {
		return nil, nil, err
	}
	return attended, notAttended, nil
}
