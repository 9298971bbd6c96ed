package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"vendepass-client/internal/domain"
)

// Shape of one entry in the static catalog file, keyed by city name.
type CitySeed struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	State     string  `json:"state"`
}

// JSON file implementation of the CatalogSource port.
type JSONSource struct {
	Path string
}

func NewJSONSource(path string) *JSONSource {
	return &JSONSource{Path: path}
}

// Read the catalog file. Cities are returned sorted by name.
func (s *JSONSource) LoadCities(ctx context.Context) ([]domain.City, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("load catalog: path is empty")
	}

	bytes, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", s.Path, err)
	}

	return ParseCities(bytes)
}

// ParseCities decodes a name-keyed catalog document.
func ParseCities(raw []byte) ([]domain.City, error) {
	var data map[string]CitySeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("load catalog: parse json: %w", err)
	}

	cities := make([]domain.City, 0, len(data))
	for name, seed := range data {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.New("load catalog: city name cannot be empty")
		}
		if seed.Latitude < -90 || seed.Latitude > 90 || seed.Longitude < -180 || seed.Longitude > 180 {
			return nil, fmt.Errorf("load catalog: city %q: coordinates out of range (%v, %v)", name, seed.Latitude, seed.Longitude)
		}

		cities = append(cities, domain.City{
			Name:      name,
			State:     strings.TrimSpace(seed.State),
			Latitude:  seed.Latitude,
			Longitude: seed.Longitude,
		})
	}

	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities, nil
}
