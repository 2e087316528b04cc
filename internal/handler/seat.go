package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/availability"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// SeatHandler serves availability reads and the administrator's
// withdraw/restore endpoints for individual seats.
type SeatHandler struct {
	Resolver *availability.Resolver
	Marks    *repository.UnavailableRepo
	Layouts  *repository.LayoutRepo
}

func NewSeatHandler(res *availability.Resolver, marks *repository.UnavailableRepo, layouts *repository.LayoutRepo) *SeatHandler {
	if res == nil || marks == nil || layouts == nil {
		panic("nil dependency passed to NewSeatHandler")
	}
	return &SeatHandler{Resolver: res, Marks: marks, Layouts: layouts}
}

// Availability partitions one layout's seats for a date into
// available, reserved and unavailable sets.
func (h *SeatHandler) Availability(c echo.Context) error {
	layoutID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid layout id"})
	}
	date := c.QueryParam("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Resolver.ComputeAvailability(ctx, layoutID, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type layoutCount struct {
	LayoutID       uint64 `json:"layoutId"`
	LayoutName     string `json:"layoutName"`
	AvailableCount int    `json:"availableCount"`
}

// AvailabilityCounts reports the free-seat count of every layout for
// one date, for the layout picker.
func (h *SeatHandler) AvailabilityCounts(c echo.Context) error {
	date := c.QueryParam("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	names, err := h.Layouts.ListNames(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]layoutCount, 0, len(names))
	for _, n := range names {
		res, err := h.Resolver.ComputeAvailability(ctx, n.ID, date)
		if err != nil {
			return respondError(c, err)
		}
		out = append(out, layoutCount{LayoutID: n.ID, LayoutName: n.Name, AvailableCount: res.AvailableCount})
	}
	return c.JSON(http.StatusOK, out)
}

type markBody struct {
	Date     string `json:"date"`
	LayoutID uint64 `json:"layoutId"`
	SeatID   int    `json:"seatId"`
}

// MarkUnavailable withdraws a seat from the bookable pool for one
// date. Repeating the call is a no-op. Admin only.
func (h *SeatHandler) MarkUnavailable(c echo.Context) error {
	var body markBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m, err := h.Resolver.MarkUnavailable(ctx, body.Date, body.LayoutID, body.SeatID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// MakeAvailable removes a withdrawal mark by its (date, layout, seat)
// identity. Admin only.
func (h *SeatHandler) MakeAvailable(c echo.Context) error {
	var body markBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Resolver.MakeAvailable(ctx, body.Date, body.LayoutID, body.SeatID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMarks returns withdrawal marks, narrowed by layoutId and/or date
// query parameters when present.
func (h *SeatHandler) ListMarks(c echo.Context) error {
	date := c.QueryParam("date")
	layoutID, hasLayout := queryID(c, "layoutId")
	if date != "" && !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	switch {
	case hasLayout && date != "":
		ms, err := h.Marks.ListByLayoutAndDate(ctx, layoutID, date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, ms)
	case date != "":
		ms, err := h.Marks.ListByDate(ctx, date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, ms)
	default:
		ms, err := h.Marks.ListAll(ctx)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, ms)
	}
}
