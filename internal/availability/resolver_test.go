package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trainee-seat-reservation/internal/model"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// --- In-memory fakes ---

type fakeLayouts struct {
	layouts map[uint64]*model.Layout
}

func (f *fakeLayouts) GetByID(_ context.Context, id uint64) (*model.Layout, error) {
	l, ok := f.layouts[id]
	if !ok {
		return nil, repository.ErrLayoutNotFound
	}
	return l, nil
}

type fakeBookings struct {
	seq         uint64
	byID        map[uint64]*model.Booking
	createCalls int
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{byID: map[uint64]*model.Booking{}}
}

// Create mimics the unique indexes on the bookings table: the insert
// itself rejects seat and user conflicts.
func (f *fakeBookings) Create(_ context.Context, b *model.Booking) error {
	f.createCalls++
	for _, ex := range f.byID {
		if ex.LayoutID == b.LayoutID && ex.BookingDate == b.BookingDate && ex.SeatID == b.SeatID {
			return repository.ErrSeatTaken
		}
		if ex.UserID == b.UserID && ex.BookingDate == b.BookingDate && ex.LayoutID == b.LayoutID {
			return repository.ErrDuplicateUserBooking
		}
	}
	f.seq++
	b.ID = f.seq
	cp := *b
	f.byID[b.ID] = &cp
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) Delete(_ context.Context, id uint64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeBookings) SeatIDsByLayoutAndDate(_ context.Context, layoutID uint64, date string) ([]int, error) {
	ids := []int{}
	for _, b := range f.byID {
		if b.LayoutID == layoutID && b.BookingDate == date {
			ids = append(ids, b.SeatID)
		}
	}
	return ids, nil
}

type fakeMarks struct {
	rows map[markKey]struct{}
}

type markKey struct {
	date     string
	layoutID uint64
	seatID   int
}

func newFakeMarks() *fakeMarks { return &fakeMarks{rows: map[markKey]struct{}{}} }

func (f *fakeMarks) Create(_ context.Context, m *model.UnavailableMark) error {
	f.rows[markKey{m.Date, m.LayoutID, m.SeatID}] = struct{}{}
	return nil
}

func (f *fakeMarks) Delete(_ context.Context, date string, layoutID uint64, seatID int) error {
	k := markKey{date, layoutID, seatID}
	if _, ok := f.rows[k]; !ok {
		return repository.ErrMarkNotFound
	}
	delete(f.rows, k)
	return nil
}

func (f *fakeMarks) SeatIDsByLayoutAndDate(_ context.Context, layoutID uint64, date string) ([]int, error) {
	ids := []int{}
	for k := range f.rows {
		if k.date == date && k.layoutID == layoutID {
			ids = append(ids, k.seatID)
		}
	}
	return ids, nil
}

type fakeNotifier struct {
	confirmed []uint64
	cancelled []uint64
	fail      bool
}

func (f *fakeNotifier) BookingConfirmed(_ context.Context, b *model.Booking) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.confirmed = append(f.confirmed, b.ID)
	return nil
}

func (f *fakeNotifier) BookingCancelled(_ context.Context, b *model.Booking) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.cancelled = append(f.cancelled, b.ID)
	return nil
}

// --- Helpers ---

func roomA() *model.Layout {
	return &model.Layout{
		ID:   1,
		Name: "RoomA",
		Seats: []model.SeatSlot{
			{SeatID: 1, Row: 0, Col: 0},
			{SeatID: 2, Row: 0, Col: 1},
			{SeatID: 3, Row: 0, Col: 2},
		},
	}
}

func newTestResolver() (*Resolver, *fakeBookings, *fakeMarks, *fakeNotifier) {
	layouts := &fakeLayouts{layouts: map[uint64]*model.Layout{1: roomA()}}
	bookings := newFakeBookings()
	marks := newFakeMarks()
	notifier := &fakeNotifier{}
	return New(layouts, bookings, marks, notifier), bookings, marks, notifier
}

func reserveReq(userID uint64, seatID int) ReserveRequest {
	return ReserveRequest{
		UserID:        userID,
		UserName:      fmt.Sprintf("User %d", userID),
		UserEmail:     fmt.Sprintf("u%d@example.com", userID),
		UserContactNo: "0771234567",
		UserNicNo:     fmt.Sprintf("90123456%dV", userID),
		BookingDate:   "2025-01-10",
		LayoutID:      1,
		SeatID:        seatID,
	}
}

// --- Tests ---

func TestComputeAvailabilityEmptyState(t *testing.T) {
	r, _, _, _ := newTestResolver()
	res, err := r.ComputeAvailability(context.Background(), 1, "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, res.Available)
	assert.Empty(t, res.Reserved)
	assert.Empty(t, res.Unavailable)
	assert.Equal(t, 3, res.AvailableCount)
}

func TestComputeAvailabilityUnknownLayoutIsLenient(t *testing.T) {
	r, _, _, _ := newTestResolver()
	res, err := r.ComputeAvailability(context.Background(), 99, "2025-01-10")
	require.NoError(t, err)
	assert.Empty(t, res.Available)
	assert.Empty(t, res.Reserved)
	assert.Empty(t, res.Unavailable)
	assert.Equal(t, 0, res.AvailableCount)
}

func TestReserveThenConflict(t *testing.T) {
	r, _, _, notifier := newTestResolver()
	ctx := context.Background()

	b, err := r.Reserve(ctx, reserveReq(101, 2))
	require.NoError(t, err)
	assert.False(t, b.Attended)
	assert.Equal(t, "RoomA", b.LayoutName)
	assert.Equal(t, []uint64{b.ID}, notifier.confirmed)

	// Another user, same seat, same date: seat conflict.
	_, err = r.Reserve(ctx, reserveReq(102, 2))
	assert.ErrorIs(t, err, repository.ErrSeatTaken)
}

func TestReserveSameUserTwicePerDay(t *testing.T) {
	r, _, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := r.Reserve(ctx, reserveReq(101, 2))
	require.NoError(t, err)

	// Same user, different seat, same layout and date.
	_, err = r.Reserve(ctx, reserveReq(101, 3))
	assert.ErrorIs(t, err, repository.ErrDuplicateUserBooking)
}

func TestPartitionWithMarksAndBookings(t *testing.T) {
	r, _, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := r.Reserve(ctx, reserveReq(101, 2))
	require.NoError(t, err)
	_, err = r.MarkUnavailable(ctx, "2025-01-10", 1, 1)
	require.NoError(t, err)

	res, err := r.ComputeAvailability(ctx, 1, "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, res.Available)
	assert.Equal(t, []int{2}, res.Reserved)
	assert.Equal(t, []int{1}, res.Unavailable)
	assert.Equal(t, 1, res.AvailableCount)

	// Other dates are unaffected by the mark.
	other, err := r.ComputeAvailability(ctx, 1, "2025-01-11")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, other.Available)
}

func TestComputeAvailabilityIsIdempotent(t *testing.T) {
	r, _, _, _ := newTestResolver()
	ctx := context.Background()
	_, err := r.Reserve(ctx, reserveReq(101, 2))
	require.NoError(t, err)

	first, err := r.ComputeAvailability(ctx, 1, "2025-01-10")
	require.NoError(t, err)
	second, err := r.ComputeAvailability(ctx, 1, "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReservedSeatAlsoMarkedCountsAsReserved(t *testing.T) {
	r, _, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := r.Reserve(ctx, reserveReq(101, 2))
	require.NoError(t, err)
	_, err = r.MarkUnavailable(ctx, "2025-01-10", 1, 2)
	require.NoError(t, err)

	res, err := r.ComputeAvailability(ctx, 1, "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.Reserved)
	assert.NotContains(t, res.Available, 2)
	assert.NotContains(t, res.Unavailable, 2)
}

func TestCancelFreesSeat(t *testing.T) {
	r, _, _, notifier := newTestResolver()
	ctx := context.Background()

	b, err := r.Reserve(ctx, reserveReq(101, 2))
	require.NoError(t, err)
	_, err = r.MarkUnavailable(ctx, "2025-01-10", 1, 1)
	require.NoError(t, err)

	freed, err := r.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, &Freed{LayoutID: 1, LayoutName: "RoomA", SeatID: 2}, freed)
	assert.Equal(t, []uint64{b.ID}, notifier.cancelled)

	res, err := r.ComputeAvailability(ctx, 1, "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, res.Available) // seat 1 still withdrawn
	assert.Equal(t, []int{1}, res.Unavailable)
}

func TestCancelUnknownBooking(t *testing.T) {
	r, _, _, _ := newTestResolver()
	_, err := r.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestReserveValidatesBeforeAnyWrite(t *testing.T) {
	r, bookings, _, _ := newTestResolver()

	req := reserveReq(101, 2)
	req.UserNicNo = ""
	_, err := r.Reserve(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "userNicNo")
	assert.Zero(t, bookings.createCalls)

	req = reserveReq(101, 2)
	req.BookingDate = "10/01/2025"
	_, err = r.Reserve(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, bookings.createCalls)
}

func TestReserveRejectsSeatOutsideLayout(t *testing.T) {
	r, bookings, _, _ := newTestResolver()
	_, err := r.Reserve(context.Background(), reserveReq(101, 7))
	assert.ErrorIs(t, err, ErrSeatNotInLayout)
	assert.Zero(t, len(bookings.byID))
}

func TestReserveUnknownLayout(t *testing.T) {
	r, _, _, _ := newTestResolver()
	req := reserveReq(101, 2)
	req.LayoutID = 99
	_, err := r.Reserve(context.Background(), req)
	assert.ErrorIs(t, err, repository.ErrLayoutNotFound)
}

func TestNotifierFailureDoesNotFailReserve(t *testing.T) {
	r, _, _, notifier := newTestResolver()
	notifier.fail = true
	b, err := r.Reserve(context.Background(), reserveReq(101, 2))
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
}

func TestMarkUnavailableIsIdempotent(t *testing.T) {
	r, _, marks, _ := newTestResolver()
	ctx := context.Background()

	_, err := r.MarkUnavailable(ctx, "2025-01-10", 1, 1)
	require.NoError(t, err)
	_, err = r.MarkUnavailable(ctx, "2025-01-10", 1, 1)
	require.NoError(t, err)
	assert.Len(t, marks.rows, 1)
}

func TestMakeAvailable(t *testing.T) {
	r, _, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := r.MarkUnavailable(ctx, "2025-01-10", 1, 1)
	require.NoError(t, err)
	require.NoError(t, r.MakeAvailable(ctx, "2025-01-10", 1, 1))

	// Second delete has nothing to match.
	err = r.MakeAvailable(ctx, "2025-01-10", 1, 1)
	assert.ErrorIs(t, err, repository.ErrMarkNotFound)
}

func TestPartitionIgnoresStaleRows(t *testing.T) {
	// Bookings and marks can outlive a layout edit; the partition must
	// never report seats outside the current layout.
	res := partition(
		[]model.SeatSlot{{SeatID: 1}, {SeatID: 2}},
		[]int{2, 9}, // seat 9 no longer in the layout
		[]int{8},    // seat 8 no longer in the layout
	)
	assert.Equal(t, []int{1}, res.Available)
	assert.Equal(t, []int{2}, res.Reserved)
	assert.Empty(t, res.Unavailable)
	assert.Equal(t, 1, res.AvailableCount)
}
