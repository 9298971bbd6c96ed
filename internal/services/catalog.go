package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

// Capital used as the map centre when present in the catalog.
const CenterCity = "Brasília"

// Catalog is the read-only city reference loaded once at startup.
type Catalog struct {
	byName map[string]domain.City
	names  []string
}

// LoadCatalog reads every city from src. Duplicate names are rejected.
func LoadCatalog(ctx context.Context, src ports.CatalogSource) (*Catalog, error) {
	cities, err := src.LoadCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewCatalog(cities)
}

func NewCatalog(cities []domain.City) (*Catalog, error) {
	if len(cities) == 0 {
		return nil, errors.New("load catalog: no cities")
	}

	c := &Catalog{
		byName: make(map[string]domain.City, len(cities)),
		names:  make([]string, 0, len(cities)),
	}
	for _, city := range cities {
		if _, dup := c.byName[city.Name]; dup {
			return nil, fmt.Errorf("load catalog: duplicate city %q", city.Name)
		}
		c.byName[city.Name] = city
		c.names = append(c.names, city.Name)
	}
	sort.Strings(c.names)

	return c, nil
}

// Names returns city names in sorted order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) Lookup(name string) (domain.City, bool) {
	city, ok := c.byName[name]
	return city, ok
}

// Cities returns every city ordered by name.
func (c *Catalog) Cities() []domain.City {
	out := make([]domain.City, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[n])
	}
	return out
}

func (c *Catalog) Len() int { return len(c.names) }

// Center returns the map centre: Brasília when known, otherwise the mean of
// all coordinates.
func (c *Catalog) Center() domain.Coordinates {
	if city, ok := c.byName[CenterCity]; ok {
		return city.Coordinates()
	}

	var lat, lon float64
	for _, city := range c.byName {
		lat += city.Latitude
		lon += city.Longitude
	}
	n := float64(len(c.byName))
	return domain.Coordinates{Lat: lat / n, Lon: lon / n}
}
