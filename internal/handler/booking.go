package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/availability"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// BookingHandler serves reservation, cancellation and booking listings.
// Reservations go through the availability resolver; listings read the
// booking repository directly.
type BookingHandler struct {
	Resolver *availability.Resolver
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
}

func NewBookingHandler(res *availability.Resolver, bookings *repository.BookingRepo, users *repository.UserRepo) *BookingHandler {
	if res == nil || bookings == nil || users == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Resolver: res, Bookings: bookings, Users: users}
}

type reserveBody struct {
	BookingDate string `json:"bookingDate"`
	LayoutID    uint64 `json:"layoutId"`
	SeatID      int    `json:"seatId"`
}

// Reserve books one seat for the authenticated trainee. The user's
// profile at this moment becomes the booking's immutable snapshot, so
// later profile edits never rewrite booking history.
func (h *BookingHandler) Reserve(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body reserveBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return respondError(c, err)
	}

	b, err := h.Resolver.Reserve(ctx, availability.ReserveRequest{
		UserID:        u.ID,
		UserName:      u.Name,
		UserEmail:     u.Email,
		UserContactNo: u.ContactNo,
		UserNicNo:     u.NicNo,
		BookingDate:   body.BookingDate,
		LayoutID:      body.LayoutID,
		SeatID:        body.SeatID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Cancel deletes a booking and reports the freed seat. Trainees may
// cancel only their own bookings; administrators may cancel any.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if b.UserID != uid && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}

	freed, err := h.Resolver.Cancel(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, freed)
}

// Mine lists the caller's bookings, optionally narrowed to one date.
func (h *BookingHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if date := c.QueryParam("date"); date != "" {
		if !validDate(date) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		bs, err := h.Bookings.ListByUserAndDate(ctx, uid, date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, bs)
	}

	bs, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bs)
}

// Check is a preflight for the booking form: does the caller already
// hold a booking in this layout on this date?
func (h *BookingHandler) Check(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	layoutID, ok := queryID(c, "layoutId")
	date := c.QueryParam("date")
	if !ok || !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "layoutId and date (YYYY-MM-DD) required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	exists, err := h.Bookings.ExistsForUser(ctx, uid, layoutID, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"exists": exists})
}

// ListByLayoutAndDate returns all bookings for one layout on one date.
func (h *BookingHandler) ListByLayoutAndDate(c echo.Context) error {
	layoutID, ok := queryID(c, "layoutId")
	date := c.QueryParam("date")
	if !ok || !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "layoutId and date (YYYY-MM-DD) required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bs, err := h.Bookings.ListByLayoutAndDate(ctx, layoutID, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bs)
}

// ListAll returns every live booking, newest first. Admin only.
func (h *BookingHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bs, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bs)
}

type attendanceBody struct {
	Attended *bool `json:"attended"`
}

// SetAttendance flips the attended flag on a booking. Admin only.
func (h *BookingHandler) SetAttendance(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body attendanceBody
	if err := c.Bind(&body); err != nil || body.Attended == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "attended (boolean) required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.SetAttendance(ctx, id, *body.Attended)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
