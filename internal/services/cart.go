package services

import (
	"context"
	"fmt"
	"log/slog"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

// Cart is the session's list of pending reservations.
type Cart struct {
	backend ports.CartBackend
	tickets *Tickets
	notify  *Dispatcher
	list    *syncedList[domain.Reservation]
}

// NewCart builds a cart. tickets, when non-nil, has its cache invalidated
// after each purchase.
func NewCart(b ports.CartBackend, cache ports.ListCache[domain.Reservation], tickets *Tickets, notify *Dispatcher, logger *slog.Logger) *Cart {
	return &Cart{
		backend: b,
		tickets: tickets,
		notify:  notify,
		list:    newSyncedList("cart", cache, logger),
	}
}

// List returns the pending reservations, reading through the cache.
func (c *Cart) List(ctx context.Context, session domain.Session) ([]domain.Reservation, error) {
	items, err := c.list.list(ctx, session, func(ctx context.Context) ([]domain.Reservation, error) {
		return c.backend.Cart(ctx, session)
	})
	if err != nil {
		c.notify.Error(err)
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return items, nil
}

// Refresh drops the cached copy and lists again.
func (c *Cart) Refresh(ctx context.Context, session domain.Session) ([]domain.Reservation, error) {
	c.list.invalidate(ctx, session)
	return c.List(ctx, session)
}

// Items returns the last known reservations without contacting the backend.
func (c *Cart) Items() []domain.Reservation {
	return c.list.snapshot()
}

// Purchase buys one reservation. Only after the server confirms is exactly
// that reservation removed locally.
func (c *Cart) Purchase(ctx context.Context, session domain.Session, reservationID string) error {
	err := c.list.remove(ctx, session, reservationID, func(ctx context.Context) error {
		return c.backend.Purchase(ctx, session, reservationID)
	})
	if err != nil {
		c.notify.Error(err)
		return fmt.Errorf("purchase %q: %w", reservationID, err)
	}

	if c.tickets != nil {
		c.tickets.Invalidate(ctx, session)
	}
	c.notify.Info("Passagem comprada.")
	return nil
}

// Delete cancels one reservation without buying it.
func (c *Cart) Delete(ctx context.Context, session domain.Session, reservationID string) error {
	err := c.list.remove(ctx, session, reservationID, func(ctx context.Context) error {
		return c.backend.DeleteReservation(ctx, session, reservationID)
	})
	if err != nil {
		c.notify.Error(err)
		return fmt.Errorf("delete reservation %q: %w", reservationID, err)
	}

	c.notify.Info("Reserva removida.")
	return nil
}

// Invalidate drops the cached copy so the next List reads through.
func (c *Cart) Invalidate(ctx context.Context, session domain.Session) {
	c.list.invalidate(ctx, session)
}

// Reset forgets local state, e.g. after sign-out.
func (c *Cart) Reset() {
	c.list.clear()
}
