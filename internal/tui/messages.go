package tui

import (
	"context"
	"time"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/services"

	tea "github.com/charmbracelet/bubbletea"
)

type loginResultMsg struct{ err error }

type accountMsg services.AccountSnapshot

type routeMsg services.RouteUpdate

type wishlistMsg struct {
	gen   uint64
	items []services.WishItem
	err   error
}

type cartMsg struct {
	items []domain.Reservation
	err   error
}

type ticketsMsg struct {
	items []domain.Ticket
	err   error
}

type reservedMsg struct{ err error }

type signedOutMsg struct{ err error }

// noticeFadeMsg clears the status notice if no newer notice replaced it.
type noticeFadeMsg struct{ seq int }

// logFadeMsg clears the status bar log line if no newer record replaced it.
type logFadeMsg struct{ seq int }

// Commands capture the workflow and context by value so they can run on
// bubbletea's goroutines after the model has moved on.

func loginCmd(ctx context.Context, wf *services.Workflow, username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: wf.Auth.Login(ctx, username, password)}
	}
}

func loadAccountCmd(ctx context.Context, wf *services.Workflow) tea.Cmd {
	return func() tea.Msg {
		return accountMsg(wf.LoadAccount(ctx))
	}
}

func routeCmd(ctx context.Context, wf *services.Workflow, source bool, name string) tea.Cmd {
	return func() tea.Msg {
		if source {
			return routeMsg(wf.Orchestrator.SetSource(ctx, name))
		}
		return routeMsg(wf.Orchestrator.SetDestination(ctx, name))
	}
}

func resolveCmd(ctx context.Context, wf *services.Workflow, gen uint64, path domain.Path) tea.Cmd {
	return func() tea.Msg {
		items, err := wf.Wishlist.Resolve(ctx, wf.Session(), gen, path)
		return wishlistMsg{gen: gen, items: items, err: err}
	}
}

func reserveCmd(ctx context.Context, wf *services.Workflow, path domain.Path) tea.Cmd {
	return func() tea.Msg {
		return reservedMsg{err: wf.Wishlist.Reserve(ctx, wf.Session(), path)}
	}
}

func cartCmd(ctx context.Context, wf *services.Workflow, refresh bool) tea.Cmd {
	return func() tea.Msg {
		var (
			items []domain.Reservation
			err   error
		)
		if refresh {
			items, err = wf.Cart.Refresh(ctx, wf.Session())
		} else {
			items, err = wf.Cart.List(ctx, wf.Session())
		}
		return cartMsg{items: items, err: err}
	}
}

func purchaseCmd(ctx context.Context, wf *services.Workflow, id string) tea.Cmd {
	return func() tea.Msg {
		err := wf.Cart.Purchase(ctx, wf.Session(), id)
		return cartMsg{items: wf.Cart.Items(), err: err}
	}
}

func deleteReservationCmd(ctx context.Context, wf *services.Workflow, id string) tea.Cmd {
	return func() tea.Msg {
		err := wf.Cart.Delete(ctx, wf.Session(), id)
		return cartMsg{items: wf.Cart.Items(), err: err}
	}
}

func ticketsCmd(ctx context.Context, wf *services.Workflow, refresh bool) tea.Cmd {
	return func() tea.Msg {
		var (
			items []domain.Ticket
			err   error
		)
		if refresh {
			items, err = wf.Tickets.Refresh(ctx, wf.Session())
		} else {
			items, err = wf.Tickets.List(ctx, wf.Session())
		}
		return ticketsMsg{items: items, err: err}
	}
}

func deleteTicketCmd(ctx context.Context, wf *services.Workflow, id string) tea.Cmd {
	return func() tea.Msg {
		err := wf.Tickets.Delete(ctx, wf.Session(), id)
		return ticketsMsg{items: wf.Tickets.Items(), err: err}
	}
}

func signOutCmd(ctx context.Context, wf *services.Workflow) tea.Cmd {
	return func() tea.Msg {
		return signedOutMsg{err: wf.SignOut(ctx)}
	}
}

func fadeCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	if delay <= 0 {
		return nil
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}
