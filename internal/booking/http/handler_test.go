package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivenow/car-rental-backend/internal/booking"
	"github.com/drivenow/car-rental-backend/internal/pkg/response"
)

// fakeService returns canned outcomes so the tests pin the HTTP mapping only.
type fakeService struct {
	createErr error
	created   *booking.Booking
	getErr    error
	got       *booking.Booking
}

func (f *fakeService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeService) GetByID(ctx context.Context, id int64) (*booking.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.got, nil
}

func (f *fakeService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}

func (f *fakeService) FindOverlapping(ctx context.Context, carID int64, start, end time.Time) ([]*booking.Booking, error) {
	return nil, nil
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	api := r.Group("/api")
	RegisterRoutes(api, h)
	api.GET("/cars/:id/availability", h.Availability)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"carId": 1,
	"startDate": "2024-06-10",
	"endDate": "2024-06-15",
	"customerName": "Jamie Doe",
	"email": "jamie@example.com"
}`

func TestCreateBookingSuccess(t *testing.T) {
	phone := "555-0101"
	r := newTestRouter(&fakeService{created: &booking.Booking{
		ID:             7,
		CarID:          1,
		CarBrand:       "Toyota",
		CarModel:       "Camry",
		CarCategory:    "Sedan",
		CarPricePerDay: 45,
		StartDate:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		CustomerName:   "Jamie Doe",
		Email:          "jamie@example.com",
		Phone:          &phone,
		CreatedAt:      time.Now().UTC(),
	}})

	w := doRequest(r, "POST", "/api/bookings", validBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2024-06-10", resp.StartDate)
	assert.Equal(t, "2024-06-15", resp.EndDate)
	assert.Equal(t, "Toyota", resp.Car.Brand)
	assert.Equal(t, 45.0, resp.Car.PricePerDay)
}

func TestCreateBookingErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"conflict", booking.ErrDateConflict, http.StatusConflict, "conflict"},
		{"invalid range", booking.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
		{"invalid input", booking.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
		{"unavailable", booking.ErrCarUnavailable, http.StatusBadRequest, "unavailable"},
		{"car not found", booking.ErrCarNotFound, http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeService{createErr: tt.serviceErr})

			w := doRequest(r, "POST", "/api/bookings", validBody)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestCreateBookingMalformedDateIsInvalidRange(t *testing.T) {
	r := newTestRouter(&fakeService{})

	body := strings.Replace(validBody, "2024-06-10", "June 10th", 1)
	w := doRequest(r, "POST", "/api/bookings", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_range", resp.Code)
}

func TestCreateBookingMissingFieldsRejectedAtBoundary(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := doRequest(r, "POST", "/api/bookings", `{"carId": 1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_input", resp.Code)
}

func TestGetBookingNotFound(t *testing.T) {
	r := newTestRouter(&fakeService{getErr: booking.ErrNotFound})

	w := doRequest(r, "GET", "/api/bookings/42", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookingUnknownStorageErrorIsServerError(t *testing.T) {
	r := newTestRouter(&fakeService{getErr: errors.New("connection refused")})

	w := doRequest(r, "GET", "/api/bookings/42", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "storage_error", resp.Code)
	// Raw error details must not leak
	assert.Equal(t, "internal server error", resp.Error)
}

func TestAvailabilityRequiresWindow(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := doRequest(r, "GET", "/api/cars/1/availability", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, "GET", "/api/cars/1/availability?start=2024-06-01&end=2024-06-30", "")
	require.Equal(t, http.StatusOK, w.Code)
}
