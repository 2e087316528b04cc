// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationKind distinguishes the two booking notifications.
type NotificationKind string

const (
	KindBookingConfirmed NotificationKind = "booking.confirmed"
	KindBookingCancelled NotificationKind = "booking.cancelled"
)

// BookingNotificationEvent is published after a reservation is created
// or cancelled. It carries enough information for the consumer to
// compose the outbound message without querying the primary database.
type BookingNotificationEvent struct {
	Kind        NotificationKind `json:"kind"`
	BookingID   uint64           `json:"booking_id"`
	UserName    string           `json:"user_name"`
	UserEmail   string           `json:"user_email"`
	LayoutName  string           `json:"layout_name"`
	SeatID      int              `json:"seat_id"`
	BookingDate string           `json:"booking_date"`
	OccurredAt  string           `json:"occurred_at"`
}
