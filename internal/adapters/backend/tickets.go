package backend

import (
	"context"
	"net/http"
	"vendepass-client/internal/domain"
)

type ticketsData struct {
	Tickets []domain.Ticket `json:"Tickets"`
}

type ticketIDRequest struct {
	TicketId string `json:"TicketId"`
}

func (c *Client) Tickets(ctx context.Context, session domain.Session) ([]domain.Ticket, error) {
	var data ticketsData
	err := c.exec(ctx, call{
		op:      "backend.Tickets",
		method:  http.MethodGet,
		path:    "/tickets",
		session: &session,
	}, &data)
	if err != nil {
		return nil, err
	}

	if data.Tickets == nil {
		return []domain.Ticket{}, nil
	}
	return data.Tickets, nil
}

// DeleteTicket cancels a purchased ticket.
func (c *Client) DeleteTicket(ctx context.Context, session domain.Session, ticketID string) error {
	return c.exec(ctx, call{
		op:      "backend.DeleteTicket",
		method:  http.MethodDelete,
		path:    "/ticket",
		session: &session,
		body:    ticketIDRequest{TicketId: ticketID},
	}, nil)
}
