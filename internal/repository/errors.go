// Package repository implements data access over MySQL. Sentinel
// errors defined here let handlers and the availability resolver
// distinguish failure scenarios without inspecting driver errors.
// Conflict sentinels are produced by decoding which unique index a
// rejected insert violated, so the conflict check and the write are a
// single atomic statement.
package repository

import "errors"

// ErrLayoutNotFound is returned when a layout lookup yields no rows.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrLayoutExists is returned when creating a layout whose name is
// already taken.
var ErrLayoutExists = errors.New("layout name already exists")

// ErrBookingNotFound is returned when a booking lookup or delete
// matches no rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatTaken is returned when inserting a booking for a
// (layout, date, seat) that already holds one. Handlers should
// translate this into an HTTP 409 response.
var ErrSeatTaken = errors.New("seat already reserved for this date")

// ErrDuplicateUserBooking is returned when the booking user already
// holds a seat on that layout and date. Also an HTTP 409.
var ErrDuplicateUserBooking = errors.New("user already has a booking for this date and layout")

// ErrMarkNotFound is returned when a make-available call matches no
// withdrawal row.
var ErrMarkNotFound = errors.New("unavailable mark not found")

// ErrHolidayNotFound is returned when a holiday lookup or delete
// matches no rows.
var ErrHolidayNotFound = errors.New("holiday not found")

// ErrHolidayExists is returned when adding a holiday for a date that
// already has one.
var ErrHolidayExists = errors.New("holiday already exists for this date")

// ErrUserNotFound is returned when a user lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrUserConflict is returned when a user insert or update collides on
// the NIC or contact number unique indexes.
var ErrUserConflict = errors.New("nic or contact number already in use")
