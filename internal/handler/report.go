package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// ReportHandler serves administrator reports over bookings.
type ReportHandler struct {
	Bookings *repository.BookingRepo
}

func NewReportHandler(bookings *repository.BookingRepo) *ReportHandler {
	if bookings == nil {
		panic("nil repository passed to NewReportHandler")
	}
	return &ReportHandler{Bookings: bookings}
}

// Attendance splits one date's bookings into attended and not-attended
// groups with counts. Admin only.
func (h *ReportHandler) Attendance(c echo.Context) error {
	date := c.QueryParam("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	attended, notAttended, err := h.Bookings.AttendanceByDate(ctx, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":             date,
		"attendedCount":    len(attended),
		"notAttendedCount": len(notAttended),
		"attended":         attended,
		"notAttended":      notAttended,
	})
}
