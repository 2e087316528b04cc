package model

import "time"

// ArchivedTrainee preserves a removed user's identity fields. Rows are
// written when an administrator removes a trainee from the system.
type ArchivedTrainee struct {
	ID        uint64    `json:"id"`        // past_trainees.id
	Name      string    `json:"name"`      // past_trainees.name
	NicNo     string    `json:"nicNo"`     // past_trainees.nic_no
	ContactNo string    `json:"contactNo"` // past_trainees.contact_no
	Email     string    `json:"email"`     // past_trainees.email
	RemovedAt time.Time `json:"removedAt"` // past_trainees.removed_at
}

// ArchivedBooking is a booking migrated out of the live bookings table
// when its owning user was removed. The user snapshot travels with it.
type ArchivedBooking struct {
	ID            uint64    `json:"id"`            // past_bookings.id
	UserID        uint64    `json:"userId"`        // past_bookings.user_id
	UserName      string    `json:"userName"`      // past_bookings.user_name
	UserEmail     string    `json:"userEmail"`     // past_bookings.user_email
	UserContactNo string    `json:"userContactNo"` // past_bookings.user_contact_no
	UserNicNo     string    `json:"userNicNo"`     // past_bookings.user_nic_no
	BookingDate   string    `json:"bookingDate"`   // past_bookings.booking_date
	LayoutName    string    `json:"layoutName"`    // past_bookings.layout_name
	SeatID        int       `json:"seatId"`        // past_bookings.seat_id
	Attended      bool      `json:"attended"`      // past_bookings.attended
	ArchivedAt    time.Time `json:"archivedAt"`    // past_bookings.archived_at
}
