package car

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, car *Car) error
	GetByID(ctx context.Context, id int64) (*Car, error)
	List(ctx context.Context, filter Filter) ([]*Car, error)
	Update(ctx context.Context, car *Car) error
	Delete(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var carColumns = []string{
	"id", "brand", "model", "category", "seats", "price_per_day", "image", "available", "created_at",
}

func scanCar(row pgx.Row) (*Car, error) {
	var c Car
	err := row.Scan(
		&c.ID, &c.Brand, &c.Model, &c.Category, &c.Seats,
		&c.PricePerDay, &c.Image, &c.Available, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Car) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("cars").
		Columns("brand", "model", "category", "seats", "price_per_day", "image", "available").
		Values(c.Brand, c.Model, c.Category, c.Seats, c.PricePerDay, c.Image, c.Available).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create car query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Car, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(carColumns...).
		From("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get car query failed: %w", err)
	}

	c, err := scanCar(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get car failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Car, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(carColumns...).
		From("cars").
		OrderBy("brand", "model")

	if filter.OnlyAvailable {
		query = query.Where(squirrel.Eq{"available": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cars query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cars failed: %w", err)
	}
	defer rows.Close()

	var cars []*Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car failed: %w", err)
		}
		cars = append(cars, c)
	}

	return cars, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, c *Car) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("cars").
		Set("brand", c.Brand).
		Set("model", c.Model).
		Set("category", c.Category).
		Set("seats", c.Seats).
		Set("price_per_day", c.PricePerDay).
		Set("image", c.Image).
		Set("available", c.Available).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update car query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update car failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete car query failed: %w", err)
	}

	// Bookings referencing the car are removed by ON DELETE CASCADE.
	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete car failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
