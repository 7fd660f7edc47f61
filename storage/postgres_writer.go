package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"usedcars-report/models"
	"usedcars-report/utils"
)

// PostgresWriter persists cleaned listings to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do(ctx, "postgres ping", func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS used_cars (
			id               SERIAL PRIMARY KEY,
			name             TEXT          NOT NULL DEFAULT '',
			brand            TEXT          NOT NULL DEFAULT '',
			price            DOUBLE PRECISION,
			fuel_type        VARCHAR(32)   NOT NULL DEFAULT '',
			transmission     VARCHAR(32)   NOT NULL DEFAULT '',
			owner_type       VARCHAR(32)   NOT NULL DEFAULT '',
			location         TEXT          NOT NULL DEFAULT '',
			year             INTEGER,
			seating_capacity INTEGER
		);

		ALTER TABLE used_cars ALTER COLUMN price TYPE DOUBLE PRECISION;

		CREATE INDEX IF NOT EXISTS idx_used_cars_brand     ON used_cars(brand);
		CREATE INDEX IF NOT EXISTS idx_used_cars_fuel_type ON used_cars(fuel_type);
		CREATE INDEX IF NOT EXISTS idx_used_cars_year      ON used_cars(year);
	`)
	return err
}

// Clear deletes all existing listings from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM used_cars")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the table content with listings. An empty slice leaves
// the table empty.
func (pw *PostgresWriter) Write(listings []*models.Listing) error {
	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 200
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return fmt.Errorf("postgres: insert rows %d-%d: %w", i, end, err)
		}
	}
	return nil
}

const insertColumns = 9

func (pw *PostgresWriter) insertBatch(batch []*models.Listing) error {
	query, args := buildInsert(batch)
	_, err := pw.db.Exec(query, args...)
	return err
}

func buildInsert(batch []*models.Listing) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*insertColumns)

	for idx, l := range batch {
		base := idx * insertColumns
		placeholders := make([]string, insertColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			l.Name, l.Brand, l.Price, l.FuelType, l.Transmission,
			l.OwnerType, l.Location, l.Year, l.SeatingCapacity)
	}

	query := fmt.Sprintf(`
		INSERT INTO used_cars (name, brand, price, fuel_type, transmission, owner_type, location, year, seating_capacity)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored listings in insertion order.
func (pw *PostgresWriter) FetchAll() ([]*models.Listing, error) {
	rows, err := pw.db.Query(`
		SELECT id, name, brand, price, fuel_type, transmission, owner_type, location, year, seating_capacity
		FROM used_cars
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Brand, &l.Price, &l.FuelType, &l.Transmission,
			&l.OwnerType, &l.Location, &l.Year, &l.SeatingCapacity,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
