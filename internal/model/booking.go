package model

import "time"

// Booking records one trainee's reservation of one seat, on one date,
// within one layout. The user fields are a snapshot taken at booking
// time and are deliberately never resynchronized with later profile
// edits. At most one booking may exist per (layout, date, seat) and per
// (user, date, layout); both rules are carried by unique indexes on the
// bookings table.
//
// Fields:
//
//	ID            – primary key identifier.
//	UserID        – reference to the booking user (weak, survives user removal only in the archive).
//	UserName      – snapshot of the user's name.
//	UserEmail     – snapshot of the user's email.
//	UserContactNo – snapshot of the user's contact number.
//	UserNicNo     – snapshot of the user's NIC number.
//	BookingDate   – calendar date of the reservation (no time component).
//	LayoutID      – durable reference to the layout.
//	LayoutName    – layout name snapshot for historical display.
//	SeatID        – seat within the layout.
//	Attended      – attendance flag, flips freely until deletion.
//	CreatedAt     – creation timestamp.
type Booking struct {
	ID            uint64    `json:"id"`            // bookings.id
	UserID        uint64    `json:"userId"`        // bookings.user_id
	UserName      string    `json:"userName"`      // bookings.user_name
	UserEmail     string    `json:"userEmail"`     // bookings.user_email
	UserContactNo string    `json:"userContactNo"` // bookings.user_contact_no
	UserNicNo     string    `json:"userNicNo"`     // bookings.user_nic_no
	BookingDate   string    `json:"bookingDate"`   // bookings.booking_date (YYYY-MM-DD)
	LayoutID      uint64    `json:"layoutId"`      // bookings.layout_id
	LayoutName    string    `json:"layoutName"`    // bookings.layout_name
	SeatID        int       `json:"seatId"`        // bookings.seat_id
	Attended      bool      `json:"attended"`      // bookings.attended
	CreatedAt     time.Time `json:"createdAt"`     // bookings.created_at
}
