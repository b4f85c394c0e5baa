package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Advisory lock class for booking admission. The second lock key is the car
// id, so admissions are serialized per car while different cars stay fully
// concurrent.
const admissionLockClass = 4217

type Repository interface {
	// Create atomically checks for conflicting bookings on the same car and
	// inserts the new booking. Returns ErrDateConflict if any existing booking
	// overlaps [b.StartDate, b.EndDate] under closed-interval semantics.
	Create(ctx context.Context, b *Booking) error

	// FindOverlapping returns the bookings for the car whose closed intervals
	// intersect [start, end], ordered by start date.
	FindOverlapping(ctx context.Context, carID int64, start, end time.Time) ([]*Booking, error)

	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin admission tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize the check-then-insert per car. The transaction-scoped advisory
	// lock is released automatically on commit or rollback, so a timeout or
	// failure leaves no partial state behind.
	if _, err := tx.Exec(ctx,
		"SELECT pg_advisory_xact_lock($1, $2)",
		admissionLockClass, int32(b.CarID),
	); err != nil {
		return fmt.Errorf("acquire admission lock failed: %w", err)
	}

	// Closed-interval overlap: existing.start <= new.end AND new.start <= existing.end.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"car_id": b.CarID}).
		Where(squirrel.LtOrEq{"start_date": b.EndDate}).
		Where(squirrel.GtOrEq{"end_date": b.StartDate}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build overlap check query failed: %w", err)
	}

	var conflict bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&conflict); err != nil {
		return fmt.Errorf("overlap check failed: %w", err)
	}
	if conflict {
		return ErrDateConflict
	}

	query, args, err := psql.Insert("bookings").
		Columns("car_id", "start_date", "end_date", "customer_name", "email", "phone").
		Values(b.CarID, b.StartDate, b.EndDate, b.CustomerName, b.Email, b.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		// The schema-level exclusion constraint over (car_id, daterange) is
		// the backstop for admissions that bypass the advisory lock.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrDateConflict
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit admission tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) FindOverlapping(ctx context.Context, carID int64, start, end time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "car_id", "start_date", "end_date", "customer_name", "email", "phone", "created_at").
		From("bookings").
		Where(squirrel.Eq{"car_id": carID}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.GtOrEq{"end_date": start}).
		OrderBy("start_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find overlapping query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find overlapping failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.CarID, &b.StartDate, &b.EndDate,
			&b.CustomerName, &b.Email, &b.Phone, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.car_id", "c.brand", "c.model", "c.category", "c.price_per_day",
		"b.start_date", "b.end_date", "b.customer_name", "b.email", "b.phone", "b.created_at",
	).
		From("bookings b").
		Join("cars c ON b.car_id = c.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.CarID, &b.CarBrand, &b.CarModel, &b.CarCategory, &b.CarPricePerDay,
		&b.StartDate, &b.EndDate, &b.CustomerName, &b.Email, &b.Phone, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.car_id", "c.brand", "c.model", "c.category", "c.price_per_day",
		"b.start_date", "b.end_date", "b.customer_name", "b.email", "b.phone", "b.created_at",
		"count(*) OVER() as total_count",
	).
		From("bookings b").
		Join("cars c ON b.car_id = c.id").
		OrderBy("b.created_at DESC", "b.id DESC")

	if filter.CarID != 0 {
		query = query.Where(squirrel.Eq{"b.car_id": filter.CarID})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.CarID, &b.CarBrand, &b.CarModel, &b.CarCategory, &b.CarPricePerDay,
			&b.StartDate, &b.EndDate, &b.CustomerName, &b.Email, &b.Phone, &b.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, rows.Err()
}
