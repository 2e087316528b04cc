package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/model"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// HolidayHandler manages the holiday calendar. Holidays are advisory:
// clients hide the booking form on those dates, the server does not
// reject reservations for them.
type HolidayHandler struct {
	Holidays *repository.HolidayRepo
}

func NewHolidayHandler(holidays *repository.HolidayRepo) *HolidayHandler {
	if holidays == nil {
		panic("nil repository passed to NewHolidayHandler")
	}
	return &HolidayHandler{Holidays: holidays}
}

type holidayReq struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

// Create declares a date a holiday. One holiday per date. Admin only.
func (h *HolidayHandler) Create(c echo.Context) error {
	var req holidayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Message = strings.TrimSpace(req.Message)
	if !validDate(req.Date) || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date (YYYY-MM-DD) and message required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	hol := &model.Holiday{Date: req.Date, Message: req.Message}
	if err := h.Holidays.Create(ctx, hol); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, hol)
}

// List returns all holidays ordered by date.
func (h *HolidayHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	hs, err := h.Holidays.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, hs)
}

// Delete removes the holiday on a date. Admin only.
func (h *HolidayHandler) Delete(c echo.Context) error {
	date := c.Param("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Holidays.DeleteByDate(ctx, date); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
