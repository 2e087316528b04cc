package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trainee-seat-reservation/internal/availability"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
)

// The request-validation paths below reject before any query runs, so
// the repositories can sit on a nil database handle.
func testHandlers() (*LayoutHandler, *BookingHandler, *SeatHandler, *HolidayHandler, *ReportHandler) {
	layouts := repository.NewLayoutRepo(nil)
	bookings := repository.NewBookingRepo(nil)
	marks := repository.NewUnavailableRepo(nil)
	holidays := repository.NewHolidayRepo(nil)
	users := repository.NewUserRepo(nil)
	res := availability.New(layouts, bookings, marks, nil)
	return NewLayoutHandler(layouts),
		NewBookingHandler(res, bookings, users),
		NewSeatHandler(res, marks, layouts),
		NewHolidayHandler(holidays),
		NewReportHandler(bookings)
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req, httptest.NewRecorder()
}

func TestHealth(t *testing.T) {
	req, rec := jsonRequest(http.MethodGet, "/healthz", "")
	c := echo.New().NewContext(req, rec)

	require.NoError(t, Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLayoutCreateValidation(t *testing.T) {
	lh, _, _, _, _ := testHandlers()
	e := echo.New()

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"seatPositions":[{"seatId":1,"row":0,"col":0}]}`},
		{"no seats", `{"layoutName":"RoomA","seatPositions":[]}`},
		{"zero seat id", `{"layoutName":"RoomA","seatPositions":[{"seatId":0,"row":0,"col":0}]}`},
		{"duplicate seat id", `{"layoutName":"RoomA","seatPositions":[{"seatId":1,"row":0,"col":0},{"seatId":1,"row":0,"col":1}]}`},
		{"malformed json", `{"layoutName":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, rec := jsonRequest(http.MethodPost, "/v1/admin/layouts", tc.body)
			c := e.NewContext(req, rec)

			require.NoError(t, lh.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLayoutGetInvalidID(t *testing.T) {
	lh, _, _, _, _ := testHandlers()
	req, rec := jsonRequest(http.MethodGet, "/", "")
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, lh.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReserveWithoutIdentity(t *testing.T) {
	_, bh, _, _, _ := testHandlers()
	req, rec := jsonRequest(http.MethodPost, "/v1/bookings", `{"bookingDate":"2025-01-10","layoutId":1,"seatId":1}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, bh.Reserve(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelInvalidID(t *testing.T) {
	_, bh, _, _, _ := testHandlers()
	req, rec := jsonRequest(http.MethodDelete, "/", "")
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("0")

	require.NoError(t, bh.Cancel(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckRequiresParams(t *testing.T) {
	_, bh, _, _, _ := testHandlers()
	req, rec := jsonRequest(http.MethodGet, "/v1/bookings/check?layoutId=1", "")
	c := echo.New().NewContext(req, rec)
	c.Set("user_id", float64(1))

	require.NoError(t, bh.Check(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMineRejectsBadDate(t *testing.T) {
	_, bh, _, _, _ := testHandlers()
	req, rec := jsonRequest(http.MethodGet, "/v1/bookings/mine?date=10-01-2025", "")
	c := echo.New().NewContext(req, rec)
	c.Set("user_id", float64(1))

	require.NoError(t, bh.Mine(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetAttendanceRequiresFlag(t *testing.T) {
	_, bh, _, _, _ := testHandlers()
	req, rec := jsonRequest(http.MethodPatch, "/", `{}`)
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, bh.SetAttendance(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityRejectsBadInput(t *testing.T) {
	_, _, sh, _, _ := testHandlers()
	e := echo.New()

	req, rec := jsonRequest(http.MethodGet, "/?date=2025-01-10", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("x")
	require.NoError(t, sh.Availability(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = jsonRequest(http.MethodGet, "/?date=not-a-date", "")
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, sh.Availability(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityCountsRequireDate(t *testing.T) {
	_, _, sh, _, _ := testHandlers()
	req, rec := jsonRequest(http.MethodGet, "/v1/availability/counts", "")
	c := echo.New().NewContext(req, rec)

	require.NoError(t, sh.AvailabilityCounts(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHolidayValidation(t *testing.T) {
	_, _, _, hh, _ := testHandlers()
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/", `{"date":"2025/01/01","message":"New Year"}`)
	require.NoError(t, hh.Create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = jsonRequest(http.MethodPost, "/", `{"date":"2025-01-01","message":"  "}`)
	require.NoError(t, hh.Create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = jsonRequest(http.MethodDelete, "/", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("January-1st")
	require.NoError(t, hh.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceReportRequiresDate(t *testing.T) {
	_, _, _, _, rh := testHandlers()
	req, rec := jsonRequest(http.MethodGet, "/v1/admin/reports/attendance", "")
	c := echo.New().NewContext(req, rec)

	require.NoError(t, rh.Attendance(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
