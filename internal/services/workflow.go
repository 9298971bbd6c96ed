package services

import (
	"context"
	"log/slog"
	"time"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

// WorkflowDeps are the collaborators the composition root provides.
type WorkflowDeps struct {
	Backend        ports.Backend
	Catalog        *Catalog
	CartCache      ports.ListCache[domain.Reservation]
	TicketCache    ports.ListCache[domain.Ticket]
	Notifier       ports.Notifier
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// Workflow wires every client component around one session store.
type Workflow struct {
	Sessions     *SessionStore
	Catalog      *Catalog
	Notify       *Dispatcher
	Auth         *Auth
	Routes       *RouteQuery
	Orchestrator *Orchestrator
	Wishlist     *Wishlist
	Cart         *Cart
	Tickets      *Tickets
}

func NewWorkflow(d WorkflowDeps) *Workflow {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sessions := NewSessionStore()
	notify := NewDispatcher(d.Notifier, logger)
	routes := NewRouteQuery(d.Backend, d.RequestTimeout)
	tickets := NewTickets(d.Backend, d.TicketCache, notify, logger)
	cart := NewCart(d.Backend, d.CartCache, tickets, notify, logger)

	return &Workflow{
		Sessions:     sessions,
		Catalog:      d.Catalog,
		Notify:       notify,
		Auth:         NewAuth(d.Backend, sessions, notify),
		Routes:       routes,
		Orchestrator: NewOrchestrator(sessions, routes, notify),
		Wishlist:     NewWishlist(d.Backend, cart, notify),
		Cart:         cart,
		Tickets:      tickets,
	}
}

// Session is shorthand for the current session.
func (w *Workflow) Session() domain.Session {
	return w.Sessions.Current()
}

// HandleAuthFailure has the signature of backend.AuthFailureHandler. It
// clears the session and every piece of per-user state.
func (w *Workflow) HandleAuthFailure(ctx context.Context, err error) {
	w.reset()
}

// SignOut logs out server-side and resets local state either way.
func (w *Workflow) SignOut(ctx context.Context) error {
	err := w.Auth.Logout(ctx)
	w.reset()
	return err
}

func (w *Workflow) LoadAccount(ctx context.Context) AccountSnapshot {
	return LoadAccount(ctx, w.Auth, w.Cart, w.Tickets, w.Session())
}

func (w *Workflow) reset() {
	w.Sessions.Clear()
	w.Orchestrator.Reset()
	w.Wishlist.Reset()
	w.Cart.Reset()
	w.Tickets.Reset()
}
