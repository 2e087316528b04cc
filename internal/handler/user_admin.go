package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// UserAdminHandler serves the administrator's user management surface:
// listing trainees, editing profiles and removing users into the
// archive.
type UserAdminHandler struct {
	Users   *repository.UserRepo
	Archive *repository.ArchiveRepo
}

func NewUserAdminHandler(users *repository.UserRepo, archive *repository.ArchiveRepo) *UserAdminHandler {
	if users == nil || archive == nil {
		panic("nil repository passed to NewUserAdminHandler")
	}
	return &UserAdminHandler{Users: users, Archive: archive}
}

// List returns every live user.
func (h *UserAdminHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	us, err := h.Users.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]echo.Map, 0, len(us))
	for _, u := range us {
		out = append(out, echo.Map{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"nicNo":     u.NicNo,
			"contactNo": u.ContactNo,
			"role":      u.Role,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type profileReq struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	NicNo     string `json:"nicNo"`
	ContactNo string `json:"contactNo"`
}

// UpdateProfile edits a user's identity fields. Existing bookings keep
// the snapshot taken when they were created.
func (h *UserAdminHandler) UpdateProfile(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	u.Name = req.Name
	u.Email = req.Email
	u.NicNo = strings.TrimSpace(req.NicNo)
	u.ContactNo = strings.TrimSpace(req.ContactNo)
	if err := h.Users.UpdateProfile(ctx, u); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"nicNo":     u.NicNo,
		"contactNo": u.ContactNo,
		"role":      u.Role,
	})
}

// Remove moves a user and their bookings into the archive tables and
// deletes the live rows, all in one transaction.
func (h *UserAdminHandler) Remove(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Archive.RemoveUser(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ArchivedTrainees lists removed users.
func (h *UserAdminHandler) ArchivedTrainees(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ts, err := h.Archive.ListTrainees(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// ArchivedBookings lists bookings that left the live table with their
// removed owner.
func (h *UserAdminHandler) ArchivedBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bs, err := h.Archive.ListBookings(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bs)
}
