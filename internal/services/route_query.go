package services

import (
	"context"
	"fmt"
	"time"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

// RouteQuery fetches one candidate path between two cities.
type RouteQuery struct {
	backend ports.RouteBackend
	timeout time.Duration
}

func NewRouteQuery(b ports.RouteBackend, timeout time.Duration) *RouteQuery {
	return &RouteQuery{backend: b, timeout: timeout}
}

// Find issues a single route request. Empty or equal endpoints are rejected
// with a ValidationError before the backend is contacted. A successful empty
// result is returned as an empty, non-nil Path.
func (q *RouteQuery) Find(ctx context.Context, session domain.Session, src, dest string) (domain.Path, error) {
	if src == "" || dest == "" {
		return nil, &ValidationError{Message: "Selecione origem e destino."}
	}
	if src == dest {
		return nil, &ValidationError{Message: MsgSameEndpoints}
	}

	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	path, err := q.backend.Route(ctx, session, src, dest)
	if err != nil {
		return nil, fmt.Errorf("route %q -> %q: %w", src, dest, err)
	}
	if path == nil {
		path = domain.Path{}
	}

	return path, nil
}
