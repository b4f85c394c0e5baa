package car

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Brand       string
	Model       string
	Category    string
	Seats       int
	PricePerDay float64
}

type UpdateRequest struct {
	Brand       *string
	Model       *string
	Category    *string
	Seats       *int
	PricePerDay *float64
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Car, error)
	GetByID(ctx context.Context, id int64) (*Car, error)
	ListAvailable(ctx context.Context) ([]*Car, error)
	List(ctx context.Context) ([]*Car, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Car, error)
	Delete(ctx context.Context, id int64) error
	SetImage(ctx context.Context, id int64, imageURL string) (*Car, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Car, error) {
	if strings.TrimSpace(req.Brand) == "" || strings.TrimSpace(req.Model) == "" {
		return nil, ErrInvalidInput
	}
	if req.Seats <= 0 || req.PricePerDay < 0 {
		return nil, ErrInvalidInput
	}

	c := &Car{
		Brand:       req.Brand,
		Model:       req.Model,
		Category:    req.Category,
		Seats:       req.Seats,
		PricePerDay: req.PricePerDay,
		Available:   true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Car, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAvailable returns cars with the availability switch on,
// ordered by brand then model.
func (s *service) ListAvailable(ctx context.Context) ([]*Car, error) {
	return s.repo.List(ctx, Filter{OnlyAvailable: true})
}

func (s *service) List(ctx context.Context) ([]*Car, error) {
	return s.repo.List(ctx, Filter{})
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Car, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Brand != nil {
		if strings.TrimSpace(*req.Brand) == "" {
			return nil, ErrInvalidInput
		}
		c.Brand = *req.Brand
	}
	if req.Model != nil {
		if strings.TrimSpace(*req.Model) == "" {
			return nil, ErrInvalidInput
		}
		c.Model = *req.Model
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.Seats != nil {
		if *req.Seats <= 0 {
			return nil, ErrInvalidInput
		}
		c.Seats = *req.Seats
	}
	if req.PricePerDay != nil {
		if *req.PricePerDay < 0 {
			return nil, ErrInvalidInput
		}
		c.PricePerDay = *req.PricePerDay
	}
	if req.Available != nil {
		c.Available = *req.Available
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetImage(ctx context.Context, id int64, imageURL string) (*Car, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Image = &imageURL
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
