package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"equipment-booking/internal/data/entity"
	"equipment-booking/internal/data/store"
	"equipment-booking/internal/dto/response"
	"equipment-booking/internal/usecase"
	"equipment-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	st := store.NewMemoryStore([]entity.Equipment{
		{Name: "Projector", Category: "av", TotalQuantity: 1},
		{Name: "Microphone", Category: "audio", TotalQuantity: 3},
	})

	config := &utils.Config{
		App:       utils.AppConfig{Name: "equipment-booking-test", Port: "0"},
		RateLimit: utils.RateLimitConfig{RPS: 1000, Burst: 1000},
	}

	service := usecase.NewService(st, zap.NewNop())
	return Wiring(service, config, zap.NewNop())
}

func doRequest(t *testing.T, app *App, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.Router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func availabilityTarget(id string, start, end time.Time) string {
	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	return "/api/equipment/" + id + "/availability?" + q.Encode()
}

func TestRoutes_Health(t *testing.T) {
	app := newTestApp(t)

	rec, _ := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRoutes_MetricsExposed(t *testing.T) {
	app := newTestApp(t)

	// A request through the middleware makes the counters appear.
	doRequest(t, app, http.MethodGet, "/health", nil)

	rec, _ := doRequest(t, app, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "equipment_booking_http_requests_total")
}

func TestRoutes_EquipmentList(t *testing.T) {
	app := newTestApp(t)

	rec, env := doRequest(t, app, http.MethodGet, "/api/equipment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Status)

	var items []response.EquipmentResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Microphone", items[0].Name)
}

func TestRoutes_EquipmentByID(t *testing.T) {
	app := newTestApp(t)

	rec, env := doRequest(t, app, http.MethodGet, "/api/equipment/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var item response.EquipmentResponse
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, "Projector", item.Name)

	rec, _ = doRequest(t, app, http.MethodGet, "/api/equipment/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, app, http.MethodGet, "/api/equipment/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_Availability(t *testing.T) {
	app := newTestApp(t)
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	rec, env := doRequest(t, app, http.MethodGet, availabilityTarget("1", start, end), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var av response.AvailabilityResponse
	require.NoError(t, json.Unmarshal(env.Data, &av))
	assert.Equal(t, 1, av.AvailableQuantity)

	// Missing window parameters.
	rec, _ = doRequest(t, app, http.MethodGet, "/api/equipment/1/availability", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Inverted window.
	rec, _ = doRequest(t, app, http.MethodGet, availabilityTarget("1", end, start), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_BookingLifecycle(t *testing.T) {
	app := newTestApp(t)
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	create := func(requester string, s, e time.Time) (*httptest.ResponseRecorder, envelope) {
		return doRequest(t, app, http.MethodPost, "/api/bookings", map[string]any{
			"equipment_id": 1,
			"requester":    requester,
			"start_time":   s.Format(time.RFC3339),
			"end_time":     e.Format(time.RFC3339),
		})
	}

	// Alice books the only projector.
	rec, env := create("alice", start, start.Add(2*time.Hour))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking response.BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, "B001", booking.ID)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)

	// Bob's overlapping attempt conflicts and sees the remaining quantity.
	rec, env = create("bob", start.Add(time.Hour), start.Add(3*time.Hour))
	require.Equal(t, http.StatusConflict, rec.Code)

	var conflictCtx map[string]int
	require.NoError(t, json.Unmarshal(env.Errors, &conflictCtx))
	assert.Equal(t, 0, conflictCtx["available_quantity"])

	// A stranger cannot cancel alice's booking.
	rec, _ = doRequest(t, app, http.MethodPut, "/api/bookings/B001/cancel",
		map[string]string{"requester": "mallory"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Alice cancels, bob retries, now it works.
	rec, _ = doRequest(t, app, http.MethodPut, "/api/bookings/B001/cancel",
		map[string]string{"requester": "alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = create("bob", start.Add(time.Hour), start.Add(3*time.Hour))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRoutes_CreateBookingValidation(t *testing.T) {
	app := newTestApp(t)

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing requester", func(t *testing.T) {
		rec, env := doRequest(t, app, http.MethodPost, "/api/bookings", map[string]any{
			"equipment_id": 1,
			"start_time":   "2026-09-14T10:00:00Z",
			"end_time":     "2026-09-14T12:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, env.Errors, "field errors are reported")
	})

	t.Run("unknown equipment", func(t *testing.T) {
		rec, _ := doRequest(t, app, http.MethodPost, "/api/bookings", map[string]any{
			"equipment_id": 404,
			"requester":    "alice",
			"start_time":   "2026-09-14T10:00:00Z",
			"end_time":     "2026-09-14T12:00:00Z",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inverted window", func(t *testing.T) {
		rec, _ := doRequest(t, app, http.MethodPost, "/api/bookings", map[string]any{
			"equipment_id": 1,
			"requester":    "alice",
			"start_time":   "2026-09-14T12:00:00Z",
			"end_time":     "2026-09-14T10:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRoutes_ListBookings(t *testing.T) {
	app := newTestApp(t)
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	_, _ = doRequest(t, app, http.MethodPost, "/api/bookings", map[string]any{
		"equipment_id": 2,
		"requester":    "alice",
		"start_time":   start.Format(time.RFC3339),
		"end_time":     start.Add(time.Hour).Format(time.RFC3339),
	})

	rec, env := doRequest(t, app, http.MethodGet, "/api/bookings?requester=alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []response.BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "Microphone", bookings[0].EquipmentName)

	rec, env = doRequest(t, app, http.MethodGet, "/api/bookings?requester=nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &bookings))
	assert.Len(t, bookings, 0)
}

func TestRoutes_ReturnBooking(t *testing.T) {
	app := newTestApp(t)
	start := time.Now().UTC().Add(-time.Hour)

	_, env := doRequest(t, app, http.MethodPost, "/api/bookings", map[string]any{
		"equipment_id": 1,
		"requester":    "alice",
		"start_time":   start.Format(time.RFC3339),
		"end_time":     start.Add(4 * time.Hour).Format(time.RFC3339),
	})

	var booking response.BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &booking))

	rec, env := doRequest(t, app, http.MethodPut, "/api/bookings/"+booking.ID+"/return", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var returned response.BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &returned))
	assert.Equal(t, entity.BookingStatusReturned, returned.Status)
	assert.NotNil(t, returned.ReturnedAt)

	// Second return is an invalid state transition.
	rec, _ = doRequest(t, app, http.MethodPut, "/api/bookings/"+booking.ID+"/return", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_AdminCancel(t *testing.T) {
	app := newTestApp(t)
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	_, env := doRequest(t, app, http.MethodPost, "/api/bookings", map[string]any{
		"equipment_id": 1,
		"requester":    "alice",
		"start_time":   start.Format(time.RFC3339),
		"end_time":     start.Add(time.Hour).Format(time.RFC3339),
	})

	var booking response.BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &booking))

	// No requester needed on the admin route.
	rec, env := doRequest(t, app, http.MethodPut, "/api/admin/bookings/"+booking.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cancelled response.BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &cancelled))
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)
}
