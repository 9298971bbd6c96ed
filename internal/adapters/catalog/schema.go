package catalog

import (
	"context"
	"errors"
	"fmt"
	"vendepass-client/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Initialize the catalog schema. Safe to run repeatedly.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCitiesQuery := `
	CREATE TABLE IF NOT EXISTS cities (
		name TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
	`

	createStateIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_cities_state
	ON cities(state);
	`

	statements := []string{
		createCitiesQuery,
		createStateIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert cities into the catalog table.
func SeedCities(ctx context.Context, db *sqlx.DB, cities []domain.City) error {
	if db == nil {
		return errors.New("seed cities: DB is nil")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed cities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := tx.Rebind(`
	INSERT INTO cities (
		name,
		state,
		latitude,
		longitude
	)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE
	SET state = EXCLUDED.state,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`)
	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed cities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cities {
		if c.Name == "" {
			return errors.New("seed cities: city name cannot be empty")
		}
		if _, err := stmt.ExecContext(ctx, c.Name, c.State, c.Latitude, c.Longitude); err != nil {
			return fmt.Errorf("seed cities: insert name=%q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed cities: commit tx: %w", err)
	}

	return nil
}
