package car

import (
	"net/http"
	"time"

	"github.com/drivenow/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, apperror.CodeNotFound, "car not found")
	ErrInvalidInput = apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "invalid car attributes")
)

// Car is a rentable vehicle in the catalog.
//
// Available is a manual offline switch controlled by the operator. It is
// independent of bookings: an available car can still be fully booked for a
// given range, and an unavailable car keeps its existing bookings.
type Car struct {
	ID          int64
	Brand       string
	Model       string
	Category    string
	Seats       int
	PricePerDay float64
	Image       *string
	Available   bool
	CreatedAt   time.Time
}

// Filter defines parameters for listing cars.
type Filter struct {
	OnlyAvailable bool
}
