package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

// ErrSuperseded marks a result that a newer route selection already replaced.
var ErrSuperseded = errors.New("superseded by a newer selection")

// WishItem is one flight of the current path with its seat availability.
type WishItem struct {
	FlightId string
	Flight   domain.Flight
}

// Full flights are shown as such but stay selectable.
func (w WishItem) Full() bool { return w.Flight.Full() }

// Wishlist decorates the current path with flight details and turns it into
// a reservation.
type Wishlist struct {
	backend ports.Backend
	cart    *Cart
	notify  *Dispatcher

	mu    sync.Mutex
	items []WishItem
	// route generation the items belong to
	gen uint64
}

// NewWishlist builds a wishlist. cart, when non-nil, has its cache
// invalidated after each successful reservation.
func NewWishlist(b ports.Backend, cart *Cart, notify *Dispatcher) *Wishlist {
	return &Wishlist{backend: b, cart: cart, notify: notify}
}

// Resolve fetches the flights of path in one request and replaces the list.
// gen is the route generation path came from (RouteUpdate.Generation).
// Results for a generation older than the one already stored are dropped
// with ErrSuperseded and never notified.
//
// An empty path is not resolved and the previous list is kept as is; callers
// must not rely on that list matching the path.
func (w *Wishlist) Resolve(ctx context.Context, session domain.Session, gen uint64, path domain.Path) ([]WishItem, error) {
	ids := path.FlightIDs()
	if len(ids) == 0 {
		return w.Items(), nil
	}
	if w.stale(gen) {
		return nil, fmt.Errorf("resolve flights: %w", ErrSuperseded)
	}

	flights, err := w.backend.Flights(ctx, session, ids)
	if err == nil && len(flights) != len(ids) {
		err = fmt.Errorf("asked for %d flights, got %d", len(ids), len(flights))
	}

	w.mu.Lock()
	if gen < w.gen {
		w.mu.Unlock()
		return nil, fmt.Errorf("resolve flights: %w", ErrSuperseded)
	}
	if err != nil {
		w.mu.Unlock()
		w.notify.Error(err)
		return nil, fmt.Errorf("resolve flights: %w", err)
	}

	items := make([]WishItem, len(ids))
	for i, id := range ids {
		items[i] = WishItem{FlightId: id, Flight: flights[i]}
	}
	w.gen = gen
	w.items = items
	w.mu.Unlock()

	return append([]WishItem(nil), items...), nil
}

func (w *Wishlist) stale(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return gen < w.gen
}

func (w *Wishlist) Items() []WishItem {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]WishItem(nil), w.items...)
}

// Reserve submits every flight of path as one reservation. Failures are
// always reported to the user.
func (w *Wishlist) Reserve(ctx context.Context, session domain.Session, path domain.Path) error {
	ids := path.FlightIDs()
	if len(ids) == 0 {
		err := &ValidationError{Message: "Nenhum voo para reservar."}
		w.notify.Error(err)
		return err
	}

	if err := w.backend.Reserve(ctx, session, ids); err != nil {
		w.notify.Error(err)
		return fmt.Errorf("reserve %d flights: %w", len(ids), err)
	}

	if w.cart != nil {
		w.cart.Invalidate(ctx, session)
	}
	w.notify.Info("Reserva adicionada ao carrinho.")
	return nil
}

// Reset forgets the resolved flights, e.g. after sign-out.
func (w *Wishlist) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = nil
}
