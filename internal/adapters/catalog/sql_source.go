package catalog

import (
	"context"
	"errors"
	"fmt"
	"vendepass-client/internal/domain"

	"github.com/jmoiron/sqlx"
)

// SQL-backed implementation of the CatalogSource port. Works against both
// SQLite and Postgres; queries are rebound to the driver's placeholder style.
type SQLSource struct {
	DB *sqlx.DB
}

func NewSQLSource(db *sqlx.DB) *SQLSource {
	return &SQLSource{DB: db}
}

// Return every city stored in the cities table, ordered by name.
func (s *SQLSource) LoadCities(ctx context.Context) ([]domain.City, error) {
	if s.DB == nil {
		return nil, errors.New("sql catalog: DB is nil")
	}

	query := `
	SELECT
		name,
		state,
		latitude,
		longitude
	FROM cities
	ORDER BY name;
	`

	cities := []domain.City{}
	if err := s.DB.SelectContext(ctx, &cities, query); err != nil {
		return nil, fmt.Errorf("load catalog: query cities table: %w", err)
	}

	return cities, nil
}
