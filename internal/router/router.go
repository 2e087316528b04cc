// Package router wires the HTTP handlers onto Echo routes and applies
// the authentication and role middleware per group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/handler"
	"github.com/iliyamo/trainee-seat-reservation/internal/middleware"
	"github.com/iliyamo/trainee-seat-reservation/internal/model"
)

// Handlers collects every handler the router needs.
type Handlers struct {
	Auth     *handler.AuthHandler
	Layouts  *handler.LayoutHandler
	Bookings *handler.BookingHandler
	Seats    *handler.SeatHandler
	Holidays *handler.HolidayHandler
	Reports  *handler.ReportHandler
	Users    *handler.UserAdminHandler
}

// Register mounts all routes. Unauthenticated endpoints live under
// /v1/auth (plus /healthz); everything else requires a valid access
// token, and the /v1/admin subtree additionally requires the ADMIN
// role.
//
// The response cache middleware is attached per route to the shared
// read endpoints only (layouts, availability, marks, holidays), never
// globally: route middleware runs after the group's JWTAuth, so a
// cached response can only be served to an authenticated caller, and
// per-user endpoints such as /v1/bookings/mine stay uncached.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	e.GET("/healthz", handler.Health)

	// Session endpoints. Logout accepts a refresh token in the body, so
	// it works without the JWT middleware too.
	ag := e.Group("/v1/auth")
	ag.POST("/register", h.Auth.Register)
	ag.POST("/login", h.Auth.Login)
	ag.POST("/refresh", h.Auth.Refresh)
	ag.POST("/logout", h.Auth.Logout)

	// Authenticated surface, shared by trainees and administrators.
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RequireRole(model.RoleAdmin, model.RoleTrainee))

	v1.GET("/me", h.Auth.Me)
	v1.POST("/logout", h.Auth.Logout)

	v1.GET("/layouts", h.Layouts.List, cache)
	v1.GET("/layouts/names", h.Layouts.ListNames, cache)
	v1.GET("/layouts/by-name/:name", h.Layouts.GetByName, cache)
	v1.GET("/layouts/:id", h.Layouts.Get, cache)
	v1.GET("/layouts/:id/availability", h.Seats.Availability, cache)
	v1.GET("/availability/counts", h.Seats.AvailabilityCounts, cache)

	v1.POST("/bookings", h.Bookings.Reserve)
	v1.DELETE("/bookings/:id", h.Bookings.Cancel)
	v1.GET("/bookings/mine", h.Bookings.Mine)
	v1.GET("/bookings/check", h.Bookings.Check)

	v1.GET("/unavailable", h.Seats.ListMarks, cache)
	v1.GET("/holidays", h.Holidays.List, cache)

	// Administrator-only surface.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.POST("/layouts", h.Layouts.Create)
	admin.PUT("/layouts/:id", h.Layouts.Update)
	admin.DELETE("/layouts/:id", h.Layouts.Delete)

	admin.GET("/bookings", h.Bookings.ListAll)
	admin.GET("/bookings/by-layout", h.Bookings.ListByLayoutAndDate)
	admin.PATCH("/bookings/:id/attendance", h.Bookings.SetAttendance)
	admin.GET("/reports/attendance", h.Reports.Attendance)

	admin.POST("/unavailable", h.Seats.MarkUnavailable)
	admin.DELETE("/unavailable", h.Seats.MakeAvailable)

	admin.POST("/holidays", h.Holidays.Create)
	admin.DELETE("/holidays/:date", h.Holidays.Delete)

	admin.GET("/users", h.Users.List)
	admin.PUT("/users/:id", h.Users.UpdateProfile)
	admin.DELETE("/users/:id", h.Users.Remove)
	admin.GET("/archive/trainees", h.Users.ArchivedTrainees)
	admin.GET("/archive/bookings", h.Users.ArchivedBookings)
}
