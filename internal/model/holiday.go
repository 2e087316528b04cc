package model

// Holiday marks a calendar date non-bookable system-wide with a display
// message. Holidays are not layout-specific and are unique per date.
// Clients consult the holiday list to suppress booking for that date;
// the resolver itself does not reject reservations on holidays.
type Holiday struct {
	ID      uint64 `json:"id"`      // holidays.id
	Date    string `json:"date"`    // holidays.holiday_date (YYYY-MM-DD)
	Message string `json:"message"` // holidays.message
}
