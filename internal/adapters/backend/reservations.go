package backend

import (
	"context"
	"net/http"
	"vendepass-client/internal/domain"
)

type cartData struct {
	Reservations []domain.Reservation `json:"Reservations"`
}

type reservationIDRequest struct {
	ReservationId string `json:"ReservationId"`
}

// Reserve submits all flight ids of a path as one reservation request.
func (c *Client) Reserve(ctx context.Context, session domain.Session, flightIDs []string) error {
	return c.exec(ctx, call{
		op:      "backend.Reserve",
		method:  http.MethodPost,
		path:    "/reservation",
		session: &session,
		body:    flightsRequest{FlightIds: flightIDs},
	}, nil)
}

func (c *Client) Cart(ctx context.Context, session domain.Session) ([]domain.Reservation, error) {
	var data cartData
	err := c.exec(ctx, call{
		op:      "backend.Cart",
		method:  http.MethodGet,
		path:    "/cart",
		session: &session,
	}, &data)
	if err != nil {
		return nil, err
	}

	if data.Reservations == nil {
		return []domain.Reservation{}, nil
	}
	return data.Reservations, nil
}

// Purchase converts a pending reservation into a ticket.
func (c *Client) Purchase(ctx context.Context, session domain.Session, reservationID string) error {
	return c.exec(ctx, call{
		op:      "backend.Purchase",
		method:  http.MethodPost,
		path:    "/ticket",
		session: &session,
		body:    reservationIDRequest{ReservationId: reservationID},
	}, nil)
}

func (c *Client) DeleteReservation(ctx context.Context, session domain.Session, reservationID string) error {
	return c.exec(ctx, call{
		op:      "backend.DeleteReservation",
		method:  http.MethodDelete,
		path:    "/reservation",
		session: &session,
		body:    reservationIDRequest{ReservationId: reservationID},
	}, nil)
}
