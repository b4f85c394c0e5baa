package booking

import (
	"net/http"
	"time"

	"github.com/drivenow/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, apperror.CodeNotFound, "booking not found")
	ErrCarNotFound    = apperror.New(http.StatusNotFound, apperror.CodeNotFound, "car not found")
	ErrInvalidRange   = apperror.New(http.StatusBadRequest, apperror.CodeInvalidRange, "end date must not be before start date")
	ErrInvalidInput   = apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "missing or malformed customer fields")
	ErrCarUnavailable = apperror.New(http.StatusBadRequest, apperror.CodeUnavailable, "car is not available")
	ErrDateConflict   = apperror.New(http.StatusConflict, apperror.CodeConflict, "car is already booked for the selected dates")
)

// DateLayout is the wire format for booking dates. Bookings are granular to
// whole calendar days; there is no time-of-day component.
const DateLayout = "2006-01-02"

// Booking is a committed reservation of one car for a closed date interval:
// both StartDate and EndDate are rental days. A booking ending on day D and
// another starting on day D therefore conflict.
//
// Bookings are immutable once committed and are only removed when their car is
// deleted from the catalog.
type Booking struct {
	ID             int64
	CarID          int64
	CarBrand       string
	CarModel       string
	CarCategory    string
	CarPricePerDay float64
	StartDate      time.Time
	EndDate        time.Time
	CustomerName   string
	Email          string
	Phone          *string
	CreatedAt      time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	CarID    int64
	Page     int
	PageSize int
}

// Overlaps reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] intersect: aStart <= bEnd AND bStart <= aEnd.
// The repository's SQL conflict check mirrors this predicate exactly.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
