package http

import (
	"time"

	"github.com/drivenow/car-rental-backend/internal/car"
)

type CarResponse struct {
	ID          int64     `json:"id"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Category    string    `json:"category"`
	Seats       int       `json:"seats"`
	PricePerDay float64   `json:"pricePerDay"`
	Image       *string   `json:"image"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewCarResponse(c *car.Car) CarResponse {
	return CarResponse{
		ID:          c.ID,
		Brand:       c.Brand,
		Model:       c.Model,
		Category:    c.Category,
		Seats:       c.Seats,
		PricePerDay: c.PricePerDay,
		Image:       c.Image,
		Available:   c.Available,
		CreatedAt:   c.CreatedAt,
	}
}

type CreateCarRequest struct {
	Brand       string  `json:"brand" binding:"required"`
	Model       string  `json:"model" binding:"required"`
	Category    string  `json:"category"`
	Seats       int     `json:"seats" binding:"required,min=1"`
	PricePerDay float64 `json:"pricePerDay" binding:"min=0"`
}

type UpdateCarRequest struct {
	Brand       *string  `json:"brand"`
	Model       *string  `json:"model"`
	Category    *string  `json:"category"`
	Seats       *int     `json:"seats"`
	PricePerDay *float64 `json:"pricePerDay"`
	Available   *bool    `json:"available"`
}
