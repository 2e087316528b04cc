package model

import "time"

// Layout represents a named seating arrangement managed by an
// administrator. A layout owns its seat slots; deleting the layout
// deletes the slots with it. Bookings reference a layout by its
// durable ID and keep a name snapshot for historical display.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – unique layout name.
//	Seats     – seat slots embedded in this layout.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Layout struct {
	ID        uint64     `json:"id"`         // layouts.id
	Name      string     `json:"layoutName"` // layouts.name
	Seats     []SeatSlot `json:"seatPositions"`
	CreatedAt time.Time  `json:"createdAt"` // layouts.created_at
	UpdatedAt time.Time  `json:"updatedAt"` // layouts.updated_at
}

// SeatSlot is one addressable seat within a layout. SeatID is unique
// within the layout, as is the (Row, Col) grid cell.
type SeatSlot struct {
	SeatID int `json:"seatId"` // layout_seats.seat_id
	Row    int `json:"row"`    // layout_seats.grid_row
	Col    int `json:"col"`    // layout_seats.grid_col
}
