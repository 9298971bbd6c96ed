package backend

import (
	"context"
	"net/http"
	"net/url"
	"vendepass-client/internal/domain"
)

type routeData struct {
	Path domain.Path `json:"path"`
}

type flightsRequest struct {
	FlightIds []string `json:"FlightIds"`
}

type flightsData struct {
	Flights []domain.Flight `json:"Flights"`
}

// Route asks the backend for a path between two catalog cities. A path with
// no segments is returned as an empty, non-nil Path.
func (c *Client) Route(ctx context.Context, session domain.Session, src, dest string) (domain.Path, error) {
	var data routeData
	err := c.exec(ctx, call{
		op:      "backend.Route",
		method:  http.MethodGet,
		path:    "/route",
		query:   url.Values{"src": {src}, "dest": {dest}},
		session: &session,
	}, &data)
	if err != nil {
		return nil, err
	}

	if data.Path == nil {
		return domain.Path{}, nil
	}
	return data.Path, nil
}

// Flights resolves every id in a single request.
func (c *Client) Flights(ctx context.Context, session domain.Session, flightIDs []string) ([]domain.Flight, error) {
	if len(flightIDs) == 0 {
		return []domain.Flight{}, nil
	}

	var data flightsData
	err := c.exec(ctx, call{
		op:      "backend.Flights",
		method:  http.MethodPost,
		path:    "/flights",
		session: &session,
		body:    flightsRequest{FlightIds: flightIDs},
	}, &data)
	if err != nil {
		return nil, err
	}

	if data.Flights == nil {
		return []domain.Flight{}, nil
	}
	return data.Flights, nil
}
