// Package availability computes which seats of a layout can be booked
// on a date and enforces the booking invariants at write time. It sits
// between the storage repositories and the HTTP handlers and is the
// only place that knows the partition rules:
//
//	available = layout seats − reserved − withdrawn
//
// A seat that is both reserved and withdrawn is reported as reserved
// (display precedence) and excluded from available exactly once.
package availability

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/trainee-seat-reservation/internal/model"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// ErrValidation wraps all missing/malformed-field failures. Callers
// should translate it into an HTTP 400 response.
var ErrValidation = errors.New("validation failed")

// ErrSeatNotInLayout is returned when the requested seat id is not one
// of the layout's seat slots.
var ErrSeatNotInLayout = errors.New("seat does not belong to layout")

// dateFormat is the calendar date format used on the wire and in storage.
const dateFormat = "2006-01-02"

// LayoutSource resolves layouts by durable id.
type LayoutSource interface {
	GetByID(ctx context.Context, id uint64) (*model.Layout, error)
}

// BookingStore is the subset of booking persistence the resolver needs.
// Create must be an atomic conditional insert: it either commits the
// booking or reports which uniqueness rule it would break.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	Delete(ctx context.Context, id uint64) error
	SeatIDsByLayoutAndDate(ctx context.Context, layoutID uint64, date string) ([]int, error)
}

// MarkStore is the subset of withdrawal persistence the resolver needs.
type MarkStore interface {
	Create(ctx context.Context, m *model.UnavailableMark) error
	Delete(ctx context.Context, date string, layoutID uint64, seatID int) error
	SeatIDsByLayoutAndDate(ctx context.Context, layoutID uint64, date string) ([]int, error)
}

// Notifier delivers best-effort booking notifications. Errors are
// logged by the resolver and never fail the triggering operation.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *model.Booking) error
	BookingCancelled(ctx context.Context, b *model.Booking) error
}

// Resolver wires the stores together. Construct with New.
type Resolver struct {
	layouts  LayoutSource
	bookings BookingStore
	marks    MarkStore
	notifier Notifier // may be nil when notifications are disabled
}

// New returns a Resolver over the given stores. The notifier may be
// nil, in which case notifications are skipped.
func New(layouts LayoutSource, bookings BookingStore, marks MarkStore, notifier Notifier) *Resolver {
	if layouts == nil || bookings == nil || marks == nil {
		panic("nil store passed to availability.New")
	}
	return &Resolver{layouts: layouts, bookings: bookings, marks: marks, notifier: notifier}
}

// Result is the availability partition for one (layout, date) pair.
type Result struct {
	Available      []int `json:"availableSeats"`
	Reserved       []int `json:"reservedSeats"`
	Unavailable    []int `json:"unavailableSeats"`
	AvailableCount int   `json:"availableCount"`
}

// ComputeAvailability partitions a layout's seats for a date. A layout
// that does not exist yields an empty result with a zero count rather
// than an error, matching the lenient read contract. The call is
// read-only and idempotent.
func (r *Resolver) ComputeAvailability(ctx context.Context, layoutID uint64, date string) (*Result, error) {
	layout, err := r.layouts.GetByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return emptyResult(), nil
		}
		return nil, err
	}
	reserved, err := r.bookings.SeatIDsByLayoutAndDate(ctx, layoutID, date)
	if err != nil {
		return nil, err
	}
	withdrawn, err := r.marks.SeatIDsByLayoutAndDate(ctx, layoutID, date)
	if err != nil {
		return nil, err
	}
	return partition(layout.Seats, reserved, withdrawn), nil
}

func emptyResult() *Result {
	return &Result{Available: []int{}, Reserved: []int{}, Unavailable: []int{}}
}

// partition is the pure core: set difference over seat ids. Seats
// reserved or withdrawn but absent from the layout (stale rows after a
// layout edit) are ignored so the output always stays within the
// layout's seat set. Output slices are sorted for deterministic reads.
func partition(slots []model.SeatSlot, reserved, withdrawn []int) *Result {
	all := make(map[int]struct{}, len(slots))
	for _, s := range slots {
		all[s.SeatID] = struct{}{}
	}
	res := make(map[int]struct{}, len(reserved))
	for _, id := range reserved {
		if _, ok := all[id]; ok {
			res[id] = struct{}{}
		}
	}
	wd := make(map[int]struct{}, len(withdrawn))
	for _, id := range withdrawn {
		_, inLayout := all[id]
		_, alsoReserved := res[id]
		if inLayout && !alsoReserved {
			wd[id] = struct{}{}
		}
	}
	out := emptyResult()
	for id := range all {
		switch {
		case contains(res, id):
			out.Reserved = append(out.Reserved, id)
		case contains(wd, id):
			out.Unavailable = append(out.Unavailable, id)
		default:
			out.Available = append(out.Available, id)
		}
	}
	sort.Ints(out.Available)
	sort.Ints(out.Reserved)
	sort.Ints(out.Unavailable)
	out.AvailableCount = len(out.Available)
	return out
}

func contains(set map[int]struct{}, id int) bool {
	_, ok := set[id]
	return ok
}

// ReserveRequest carries everything needed to create a booking. The
// user fields become an immutable snapshot on the booking row.
type ReserveRequest struct {
	UserID        uint64 `json:"userId"`
	UserName      string `json:"userName"`
	UserEmail     string `json:"userEmail"`
	UserContactNo string `json:"userContactNo"`
	UserNicNo     string `json:"userNicNo"`
	BookingDate   string `json:"bookingDate"`
	LayoutID      uint64 `json:"layoutId"`
	SeatID        int    `json:"seatId"`
}

// validate collects all missing or malformed fields before any storage
// access so a rejected request never touches the database.
func (req *ReserveRequest) validate() error {
	var missing []string
	if req.UserID == 0 {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(req.UserName) == "" {
		missing = append(missing, "userName")
	}
	if strings.TrimSpace(req.UserEmail) == "" {
		missing = append(missing, "userEmail")
	}
	if strings.TrimSpace(req.UserContactNo) == "" {
		missing = append(missing, "userContactNo")
	}
	if strings.TrimSpace(req.UserNicNo) == "" {
		missing = append(missing, "userNicNo")
	}
	if req.BookingDate == "" {
		missing = append(missing, "bookingDate")
	}
	if req.LayoutID == 0 {
		missing = append(missing, "layoutId")
	}
	if req.SeatID == 0 {
		missing = append(missing, "seatId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if _, err := time.Parse(dateFormat, req.BookingDate); err != nil {
		return fmt.Errorf("%w: bookingDate must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

// Reserve creates a booking for one seat, one date, one layout.
//
// The uniqueness rules are not pre-checked with reads; the insert
// itself is the check, so two concurrent attempts on the same seat
// cannot both succeed. Possible errors: ErrValidation,
// repository.ErrLayoutNotFound, ErrSeatNotInLayout,
// repository.ErrSeatTaken, repository.ErrDuplicateUserBooking.
func (r *Resolver) Reserve(ctx context.Context, req ReserveRequest) (*model.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	layout, err := r.layouts.GetByID(ctx, req.LayoutID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, s := range layout.Seats {
		if s.SeatID == req.SeatID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrSeatNotInLayout
	}

	b := &model.Booking{
		UserID:        req.UserID,
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		UserContactNo: req.UserContactNo,
		UserNicNo:     req.UserNicNo,
		BookingDate:   req.BookingDate,
		LayoutID:      layout.ID,
		LayoutName:    layout.Name,
		SeatID:        req.SeatID,
	}
	if err := r.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	if r.notifier != nil {
		if err := r.notifier.BookingConfirmed(ctx, b); err != nil {
			log.Printf("availability: confirmation notification failed for booking %d: %v", b.ID, err)
		}
	}
	return b, nil
}

// Freed identifies the seat released by a cancellation so callers can
// refresh their view.
type Freed struct {
	LayoutID   uint64 `json:"layoutId"`
	LayoutName string `json:"layoutName"`
	SeatID     int    `json:"seatId"`
}

// Cancel deletes a booking by identity and reports the freed seat.
// Returns repository.ErrBookingNotFound when the id does not exist.
func (r *Resolver) Cancel(ctx context.Context, bookingID uint64) (*Freed, error) {
	b, err := r.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := r.bookings.Delete(ctx, bookingID); err != nil {
		return nil, err
	}
	if r.notifier != nil {
		if err := r.notifier.BookingCancelled(ctx, b); err != nil {
			log.Printf("availability: cancellation notification failed for booking %d: %v", b.ID, err)
		}
	}
	return &Freed{LayoutID: b.LayoutID, LayoutName: b.LayoutName, SeatID: b.SeatID}, nil
}

// MarkUnavailable withdraws a seat from the bookable pool for one date.
// Marking an already withdrawn seat is a no-op. The seat may already be
// booked; warning the affected trainee is the administrator's call.
func (r *Resolver) MarkUnavailable(ctx context.Context, date string, layoutID uint64, seatID int) (*model.UnavailableMark, error) {
	if _, err := time.Parse(dateFormat, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if seatID == 0 {
		return nil, fmt.Errorf("%w: missing required fields: seatId", ErrValidation)
	}
	layout, err := r.layouts.GetByID(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	m := &model.UnavailableMark{
		Date:       date,
		LayoutID:   layout.ID,
		LayoutName: layout.Name,
		SeatID:     seatID,
	}
	if err := r.marks.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MakeAvailable removes a withdrawal mark by its canonical
// (date, layout, seat) key. Returns repository.ErrMarkNotFound when no
// mark matched.
func (r *Resolver) MakeAvailable(ctx context.Context, date string, layoutID uint64, seatID int) error {
	if _, err := time.Parse(dateFormat, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return r.marks.Delete(ctx, date, layoutID, seatID)
}
