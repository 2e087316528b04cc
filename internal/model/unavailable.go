package model

// UnavailableMark is an administrator's temporary withdrawal of one
// seat, in one layout, on one date, from the bookable pool. Marks for
// other dates are unaffected. A seat that is already booked may still
// be marked; resolving that conflict is left to the administrator.
//
// Fields:
//
//	ID         – primary key identifier.
//	Date       – calendar date the withdrawal applies to (YYYY-MM-DD).
//	LayoutID   – durable reference to the layout.
//	LayoutName – layout name snapshot.
//	SeatID     – seat within the layout.
type UnavailableMark struct {
	ID         uint64 `json:"id"`         // unavailable_seats.id
	Date       string `json:"date"`       // unavailable_seats.mark_date
	LayoutID   uint64 `json:"layoutId"`   // unavailable_seats.layout_id
	LayoutName string `json:"layoutName"` // unavailable_seats.layout_name
	SeatID     int    `json:"seatId"`     // unavailable_seats.seat_id
}
