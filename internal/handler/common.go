package handler // HTTP handlers for the reservation API

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/availability"
	"github.com/iliyamo/trainee-seat-reservation/internal/model"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// dbTimeout bounds every handler-initiated database call.
const dbTimeout = 5 * time.Second

// getUserID reads the JWT subject placed in the context by the auth
// middleware. Numeric claims decode as float64, so a few shapes are
// accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the request carries the ADMIN role claim.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleAdmin
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}

// queryID parses a numeric query parameter.
func queryID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	return n, err == nil && n > 0
}

// respondError maps the domain sentinels onto HTTP statuses so every
// handler reports the same shape for the same failure.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, availability.ErrValidation),
		errors.Is(err, availability.ErrSeatNotInLayout):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrLayoutNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrMarkNotFound),
		errors.Is(err, repository.ErrHolidayNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrSeatTaken),
		errors.Is(err, repository.ErrDuplicateUserBooking),
		errors.Is(err, repository.ErrLayoutExists),
		errors.Is(err, repository.ErrHolidayExists),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrUserConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("handler: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// validDate reports whether s is a YYYY-MM-DD calendar date.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
