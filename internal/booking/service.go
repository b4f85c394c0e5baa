package booking

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/drivenow/car-rental-backend/internal/car"
	"github.com/drivenow/car-rental-backend/internal/pkg/apperror"
)

// Basic local@domain shape. The HTTP boundary applies gin's stricter email
// binding on top; this check holds for non-HTTP callers too.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

type CreateRequest struct {
	CarID        int64
	StartDate    time.Time
	EndDate      time.Time
	CustomerName string
	Email        string
	Phone        *string
}

type Service interface {
	// Create admits or rejects a booking request. On success the booking is
	// durably persisted and returned with its assigned id and creation
	// timestamp; on failure no state changes.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	FindOverlapping(ctx context.Context, carID int64, start, end time.Time) ([]*Booking, error)
}

type service struct {
	repo       Repository
	carService car.Service
}

func NewService(repo Repository, carService car.Service) Service {
	return &service{
		repo:       repo,
		carService: carService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate customer fields before touching storage.
	if strings.TrimSpace(req.CustomerName) == "" || !emailShape.MatchString(req.Email) {
		return nil, ErrInvalidInput
	}

	// 2. Validate the date range. Dates are closed intervals, so a single-day
	// rental (start == end) is legal; only an inverted range is rejected.
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidRange
	}

	// 3. The car must exist and not be switched offline by the operator.
	c, err := s.carService.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, car.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, storageError(err)
	}
	if !c.Available {
		return nil, ErrCarUnavailable
	}

	// 4. Atomic check-then-insert; the repository serializes admissions per
	// car, so of two racing overlapping requests exactly one wins.
	b := &Booking{
		CarID:          req.CarID,
		CarBrand:       c.Brand,
		CarModel:       c.Model,
		CarCategory:    c.Category,
		CarPricePerDay: c.PricePerDay,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		CustomerName:   req.CustomerName,
		Email:          req.Email,
		Phone:          req.Phone,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrDateConflict) {
			return nil, ErrDateConflict
		}
		return nil, storageError(err)
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, storageError(err)
	}
	return bookings, total, nil
}

func (s *service) FindOverlapping(ctx context.Context, carID int64, start, end time.Time) ([]*Booking, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	if _, err := s.carService.GetByID(ctx, carID); err != nil {
		if errors.Is(err, car.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, storageError(err)
	}
	bookings, err := s.repo.FindOverlapping(ctx, carID, start, end)
	if err != nil {
		return nil, storageError(err)
	}
	return bookings, nil
}

// storageError hides raw storage failures behind the retryable taxonomy code.
func storageError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Wrap(err, http.StatusInternalServerError, apperror.CodeStorage, "storage failure")
}
