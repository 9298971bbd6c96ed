package services

import (
	"context"
	"fmt"
	"log/slog"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

// Tickets is the session's list of purchased tickets.
type Tickets struct {
	backend ports.TicketBackend
	notify  *Dispatcher
	list    *syncedList[domain.Ticket]
}

func NewTickets(b ports.TicketBackend, cache ports.ListCache[domain.Ticket], notify *Dispatcher, logger *slog.Logger) *Tickets {
	return &Tickets{
		backend: b,
		notify:  notify,
		list:    newSyncedList("tickets", cache, logger),
	}
}

func (t *Tickets) List(ctx context.Context, session domain.Session) ([]domain.Ticket, error) {
	items, err := t.list.list(ctx, session, func(ctx context.Context) ([]domain.Ticket, error) {
		return t.backend.Tickets(ctx, session)
	})
	if err != nil {
		t.notify.Error(err)
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return items, nil
}

func (t *Tickets) Refresh(ctx context.Context, session domain.Session) ([]domain.Ticket, error) {
	t.list.invalidate(ctx, session)
	return t.List(ctx, session)
}

func (t *Tickets) Items() []domain.Ticket {
	return t.list.snapshot()
}

// Delete cancels one ticket and removes it locally once the server confirms.
func (t *Tickets) Delete(ctx context.Context, session domain.Session, ticketID string) error {
	err := t.list.remove(ctx, session, ticketID, func(ctx context.Context) error {
		return t.backend.DeleteTicket(ctx, session, ticketID)
	})
	if err != nil {
		t.notify.Error(err)
		return fmt.Errorf("delete ticket %q: %w", ticketID, err)
	}

	t.notify.Info("Passagem cancelada.")
	return nil
}

func (t *Tickets) Invalidate(ctx context.Context, session domain.Session) {
	t.list.invalidate(ctx, session)
}

func (t *Tickets) Reset() {
	t.list.clear()
}
