package ports

import (
	"context"
	"vendepass-client/internal/domain"
)

// Port: a boundary for loading the static city catalog.
type CatalogSource interface {
	// Retrieve every catalog city. Called once at startup.
	LoadCities(ctx context.Context) ([]domain.City, error)
}
