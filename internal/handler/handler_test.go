package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/model"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/repository/memstore"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/seed"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type Test struct {
	description  string
	method       string
	route        string
	body         string
	expectedCode int
	expectedBody string
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memstore.New()
	_, err := seed.Run(context.Background(), store, time.Now(), "Asia/Kolkata", zap.NewNop())
	require.NoError(t, err)

	svc := service.NewBookingService(store, store, "Asia/Kolkata", zap.NewNop())
	return NewRouter(NewBookingHandler(svc, zap.NewNop()), zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, route, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, route, nil)
	} else {
		req = httptest.NewRequest(method, route, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	tests := []Test{
		{
			description:  "health",
			method:       http.MethodGet,
			route:        "/health",
			expectedCode: http.StatusOK,
			expectedBody: `{"status":"ok"}`,
		},
		{
			description:  "book success",
			method:       http.MethodPost,
			route:        "/book",
			body:         `{"class_id":1,"client_name":"Test User","client_email":"test@example.com"}`,
			expectedCode: http.StatusCreated,
			expectedBody: `{"message":"Booking successful"}`,
		},
		{
			description:  "book missing email",
			method:       http.MethodPost,
			route:        "/book",
			body:         `{"class_id":1,"client_name":"No Email"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Missing fields"}`,
		},
		{
			description:  "book null class id",
			method:       http.MethodPost,
			route:        "/book",
			body:         `{"class_id":null,"client_name":"A","client_email":"a@example.com"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Missing fields"}`,
		},
		{
			description:  "book unknown class",
			method:       http.MethodPost,
			route:        "/book",
			body:         `{"class_id":42,"client_name":"A","client_email":"a@example.com"}`,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Class not found"}`,
		},
		{
			description:  "book malformed body",
			method:       http.MethodPost,
			route:        "/book",
			body:         `{"class_id":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			description:  "bookings without email",
			method:       http.MethodGet,
			route:        "/bookings",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Email required"}`,
		},
		{
			description:  "bookings with no matches",
			method:       http.MethodGet,
			route:        "/bookings?email=nobody@example.com",
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			description:  "classes in unknown timezone",
			method:       http.MethodGet,
			route:        "/classes?timezone=Nowhere/Nothing",
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			rec := do(t, newTestRouter(t), test.method, test.route, test.body)

			assert.Equal(t, test.expectedCode, rec.Code)
			assert.JSONEq(t, test.expectedBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestGetClasses(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/classes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var classes []model.ClassView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &classes))
	require.Len(t, classes, 3)
	assert.Equal(t, "Yoga", classes[0].Name)
	assert.Equal(t, 10, classes[0].AvailableSlots)
	assert.True(t, strings.HasSuffix(classes[0].Datetime, " 06:00:00 IST"), classes[0].Datetime)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"id", "name", "datetime", "instructor", "available_slots"} {
		assert.Contains(t, raw[0], key)
	}
}

func TestGetClassesInTimezone(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/classes?timezone=UTC", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var classes []model.ClassView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &classes))
	assert.True(t, strings.HasSuffix(classes[0].Datetime, " 00:30:00 UTC"), classes[0].Datetime)
}

func TestBookClassNoSlots(t *testing.T) {
	h := newTestRouter(t)

	for i := 0; i < 10; i++ {
		body := fmt.Sprintf(`{"class_id":1,"client_name":"User","client_email":"user%d@example.com"}`, i)
		rec := do(t, h, http.MethodPost, "/book", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/book",
		`{"class_id":1,"client_name":"Extra User","client_email":"extra@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No slots available"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/classes", "")
	var classes []model.ClassView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &classes))
	assert.Zero(t, classes[0].AvailableSlots)
}

func TestGetBookingsByEmail(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/book",
		`{"class_id":2,"client_name":"Alice","client_email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/bookings?email=alice@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "Zumba", bookings[0]["class_name"])
	assert.EqualValues(t, 1, bookings[0]["booking_id"])
	assert.True(t, strings.HasSuffix(bookings[0]["class_time_IST"].(string), " 08:00:00 IST"))
}

func TestConcurrentBookRequests(t *testing.T) {
	h := newTestRouter(t)

	const n = 20
	codes := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"class_id":3,"client_name":"U","client_email":"u%d@example.com"}`, i)
			codes <- do(t, h, http.MethodPost, "/book", body).Code
		}(i)
	}
	wg.Wait()
	close(codes)

	counts := map[int]int{}
	for c := range codes {
		counts[c]++
	}
	assert.Equal(t, 5, counts[http.StatusCreated])
	assert.Equal(t, n-5, counts[http.StatusBadRequest])
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodOptions, "/book", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
