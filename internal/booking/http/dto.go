package http

import (
	"time"

	"github.com/drivenow/car-rental-backend/internal/booking"
)

// CreateBookingRequest is the booking form payload. Field names follow the
// public API contract (camelCase); dates are calendar days, "2006-01-02".
type CreateBookingRequest struct {
	CarID        int64   `json:"carId" binding:"required,min=1"`
	StartDate    string  `json:"startDate" binding:"required"`
	EndDate      string  `json:"endDate" binding:"required"`
	CustomerName string  `json:"customerName" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone"`
}

// Dates parses and returns the requested date range.
// A malformed calendar date is an invalid-range failure.
func (r *CreateBookingRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(booking.DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, booking.ErrInvalidRange
	}
	end, err = time.Parse(booking.DateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, booking.ErrInvalidRange
	}
	return start, end, nil
}

// CarTag is the vehicle summary joined onto booking responses.
type CarTag struct {
	ID          int64   `json:"id"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Category    string  `json:"category"`
	PricePerDay float64 `json:"pricePerDay"`
}

type BookingResponse struct {
	ID           int64     `json:"id"`
	CarID        int64     `json:"carId"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	CustomerName string    `json:"customerName"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	Car          CarTag    `json:"car"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		CarID:        b.CarID,
		StartDate:    b.StartDate.Format(booking.DateLayout),
		EndDate:      b.EndDate.Format(booking.DateLayout),
		CustomerName: b.CustomerName,
		Email:        b.Email,
		Phone:        b.Phone,
		CreatedAt:    b.CreatedAt,
		Car: CarTag{
			ID:          b.CarID,
			Brand:       b.CarBrand,
			Model:       b.CarModel,
			Category:    b.CarCategory,
			PricePerDay: b.CarPricePerDay,
		},
	}
}

// BookedRange is one busy interval on a car's calendar. Customer fields are
// deliberately not exposed here.
type BookedRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func NewBookedRange(b *booking.Booking) BookedRange {
	return BookedRange{
		StartDate: b.StartDate.Format(booking.DateLayout),
		EndDate:   b.EndDate.Format(booking.DateLayout),
	}
}
