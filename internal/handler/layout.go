package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/model"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// LayoutHandler exposes administrator CRUD over seat layouts plus the
// read endpoints every client uses to render a seat map.
type LayoutHandler struct {
	Layouts *repository.LayoutRepo
}

func NewLayoutHandler(layouts *repository.LayoutRepo) *LayoutHandler {
	if layouts == nil {
		panic("nil repository passed to NewLayoutHandler")
	}
	return &LayoutHandler{Layouts: layouts}
}

type layoutReq struct {
	Name  string           `json:"layoutName"`
	Seats []model.SeatSlot `json:"seatPositions"`
}

func (req *layoutReq) validate() (string, bool) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "layoutName required", false
	}
	if len(req.Seats) == 0 {
		return "seatPositions must not be empty", false
	}
	seen := make(map[int]struct{}, len(req.Seats))
	cells := make(map[[2]int]struct{}, len(req.Seats))
	for _, s := range req.Seats {
		if s.SeatID <= 0 {
			return "seatId must be positive", false
		}
		if _, dup := seen[s.SeatID]; dup {
			return "duplicate seatId in seatPositions", false
		}
		seen[s.SeatID] = struct{}{}
		cell := [2]int{s.Row, s.Col}
		if _, dup := cells[cell]; dup {
			return "duplicate (row, col) in seatPositions", false
		}
		cells[cell] = struct{}{}
	}
	return "", true
}

// Create stores a new named layout with its seat slots.
func (h *LayoutHandler) Create(c echo.Context) error {
	var req layoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	l := &model.Layout{Name: req.Name, Seats: req.Seats}
	if err := h.Layouts.Create(ctx, l); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// Update replaces a layout's name and seat slots. Existing bookings
// keep their seat ids; stale ids are clipped out of availability reads.
func (h *LayoutHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid layout id"})
	}
	var req layoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	l := &model.Layout{ID: id, Name: req.Name, Seats: req.Seats}
	if err := h.Layouts.Update(ctx, l); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// Get returns one layout with its seat slots.
func (h *LayoutHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid layout id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	l, err := h.Layouts.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// GetByName looks a layout up by its unique name.
func (h *LayoutHandler) GetByName(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "layout name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	l, err := h.Layouts.GetByName(ctx, name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// List returns every layout with seat slots attached.
func (h *LayoutHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ls, err := h.Layouts.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ls)
}

// ListNames returns id/name pairs only, for dropdowns.
func (h *LayoutHandler) ListNames(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	names, err := h.Layouts.ListNames(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, names)
}

// Delete removes a layout and its slots. Bookings survive with their
// layout-name snapshot.
func (h *LayoutHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid layout id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Layouts.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
