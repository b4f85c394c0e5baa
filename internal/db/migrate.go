package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent so Migrate can run on every startup.
//
// The exclusion constraint on bookings is the declarative backstop for the
// no-double-booking invariant: daterange with '[]' bounds matches the
// closed-interval semantics of the overlap check in the booking repository,
// so even a bug in the application-level check cannot commit an overlap.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`CREATE TABLE IF NOT EXISTS cars (
		id BIGSERIAL PRIMARY KEY,
		brand VARCHAR(50) NOT NULL,
		model VARCHAR(50) NOT NULL,
		category VARCHAR(50),
		seats INTEGER,
		price_per_day NUMERIC(10,2) NOT NULL,
		image TEXT,
		available BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		car_id BIGINT NOT NULL REFERENCES cars(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		customer_name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL,
		phone VARCHAR(20),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT bookings_valid_range CHECK (start_date <= end_date),
		CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
			car_id WITH =,
			daterange(start_date, end_date, '[]') WITH &&
		)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_bookings_car_id ON bookings (car_id)`,

	`CREATE INDEX IF NOT EXISTS idx_bookings_dates ON bookings (start_date, end_date)`,
}

// The starter catalog from the rental operator. Only inserted when the cars
// table is empty, so administrative changes are never overwritten.
var seedCars = []struct {
	Brand    string
	Model    string
	Category string
	Seats    int
	Price    float64
}{
	{"Toyota", "Camry", "Sedan", 5, 45.0},
	{"Honda", "Accord", "Sedan", 5, 48.0},
	{"Ford", "Mustang", "Sports", 4, 75.0},
	{"BMW", "3 Series", "Luxury", 5, 95.0},
	{"Mercedes-Benz", "C-Class", "Luxury", 5, 100.0},
	{"Jeep", "Wrangler", "SUV", 5, 65.0},
	{"Toyota", "RAV4", "SUV", 5, 55.0},
	{"Nissan", "Altima", "Sedan", 5, 42.0},
	{"Chevrolet", "Corvette", "Sports", 2, 120.0},
	{"Audi", "A4", "Luxury", 5, 90.0},
}

// Migrate creates the schema if it does not exist and seeds the car catalog
// when it is empty.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM cars`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count cars: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range seedCars {
		_, err := pool.Exec(ctx,
			`INSERT INTO cars (brand, model, category, seats, price_per_day) VALUES ($1, $2, $3, $4, $5)`,
			c.Brand, c.Model, c.Category, c.Seats, c.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to seed car %s %s: %w", c.Brand, c.Model, err)
		}
	}
	log.Printf("seeded %d sample cars", len(seedCars))

	return nil
}
