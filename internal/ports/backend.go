package ports

import (
	"context"
	"vendepass-client/internal/domain"
)

// Contract for session lifecycle calls against the booking backend.
type AuthBackend interface {
	// Exchange credentials for an opaque session token.
	Login(ctx context.Context, username, password string) (domain.Session, error)
	// End the session server-side.
	Logout(ctx context.Context, session domain.Session) error
	// Return the user that owns the session.
	CurrentUser(ctx context.Context, session domain.Session) (domain.User, error)
}

// Contract for route search and flight resolution.
type RouteBackend interface {
	// Return a candidate path between two catalog cities.
	Route(ctx context.Context, session domain.Session, src, dest string) (domain.Path, error)
	// Resolve flight ids to seat availability, in request order.
	Flights(ctx context.Context, session domain.Session, flightIDs []string) ([]domain.Flight, error)
}

// Contract for pending reservations.
type CartBackend interface {
	// Create one reservation covering every flight id.
	Reserve(ctx context.Context, session domain.Session, flightIDs []string) error
	Cart(ctx context.Context, session domain.Session) ([]domain.Reservation, error)
	// Convert a reservation into a ticket.
	Purchase(ctx context.Context, session domain.Session, reservationID string) error
	DeleteReservation(ctx context.Context, session domain.Session, reservationID string) error
}

// Contract for purchased tickets.
type TicketBackend interface {
	Tickets(ctx context.Context, session domain.Session) ([]domain.Ticket, error)
	DeleteTicket(ctx context.Context, session domain.Session, ticketID string) error
}

// Backend is the full booking API consumed by the client.
type Backend interface {
	AuthBackend
	RouteBackend
	CartBackend
	TicketBackend
}
