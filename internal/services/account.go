package services

import (
	"context"
	"sync"
	"vendepass-client/internal/domain"
)

// AccountSnapshot is what the home screen shows right after sign-in.
// Each part fails independently.
type AccountSnapshot struct {
	User       domain.User
	UserErr    error
	Cart       []domain.Reservation
	CartErr    error
	Tickets    []domain.Ticket
	TicketsErr error
}

// LoadAccount fetches the user, the cart and the tickets concurrently.
func LoadAccount(ctx context.Context, auth *Auth, cart *Cart, tickets *Tickets, session domain.Session) AccountSnapshot {
	var (
		snap AccountSnapshot
		wg   sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		snap.User, snap.UserErr = auth.CurrentUser(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Cart, snap.CartErr = cart.List(ctx, session)
	}()
	go func() {
		defer wg.Done()
		snap.Tickets, snap.TicketsErr = tickets.List(ctx, session)
	}()
	wg.Wait()

	return snap
}
