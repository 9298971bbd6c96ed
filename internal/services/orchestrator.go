package services

import (
	"context"
	"errors"
	"sync"
	"vendepass-client/internal/adapters/backend"
	"vendepass-client/internal/domain"
)

// Screen is the top-level view the user is looking at.
type Screen int

const (
	ScreenIdle Screen = iota
	ScreenMap
	ScreenTickets
	ScreenCart
)

func (s Screen) String() string {
	switch s {
	case ScreenMap:
		return "map"
	case ScreenTickets:
		return "tickets"
	case ScreenCart:
		return "cart"
	default:
		return "idle"
	}
}

// RouteUpdate describes the outcome of one source/destination change.
type RouteUpdate struct {
	Generation uint64
	// Queried is false when the pair was incomplete or rejected locally.
	Queried bool
	// Applied is false when a newer selection superseded this one before
	// the backend answered. The result was dropped.
	Applied bool
	Path    domain.Path
	Err     error
}

// Orchestrator holds the selected screen, the source/destination pair and
// the current path.
//
// Every selection change takes a new generation number. A route result is
// applied only while its generation is still the latest, so answers to
// superseded selections never overwrite newer state regardless of the order
// in which they resolve.
type Orchestrator struct {
	mu          sync.Mutex
	screen      Screen
	source      string
	destination string
	path        domain.Path
	gen         uint64

	sessions *SessionStore
	routes   *RouteQuery
	notify   *Dispatcher
}

func NewOrchestrator(sessions *SessionStore, routes *RouteQuery, notify *Dispatcher) *Orchestrator {
	return &Orchestrator{
		screen:   ScreenIdle,
		path:     domain.Path{},
		sessions: sessions,
		routes:   routes,
		notify:   notify,
	}
}

// Select switches the visible screen. It has no other effect.
func (o *Orchestrator) Select(s Screen) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.screen = s
}

func (o *Orchestrator) Screen() Screen {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.screen
}

func (o *Orchestrator) Source() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.source
}

func (o *Orchestrator) Destination() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.destination
}

// Path returns the current path. The slice must not be modified.
func (o *Orchestrator) Path() domain.Path {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.path
}

// SetSource blocks until the resulting route query, if any, resolves.
func (o *Orchestrator) SetSource(ctx context.Context, name string) RouteUpdate {
	o.mu.Lock()
	o.source = name
	return o.trigger(ctx)
}

// SetDestination blocks until the resulting route query, if any, resolves.
func (o *Orchestrator) SetDestination(ctx context.Context, name string) RouteUpdate {
	o.mu.Lock()
	o.destination = name
	return o.trigger(ctx)
}

// Reset returns to the idle screen with no selection. Any query still in
// flight is superseded.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.gen++
	o.screen = ScreenIdle
	o.source = ""
	o.destination = ""
	o.path = domain.Path{}
}

// trigger must be called with o.mu held; it releases it.
func (o *Orchestrator) trigger(ctx context.Context) RouteUpdate {
	o.gen++
	gen := o.gen
	src, dest := o.source, o.destination

	if src == "" || dest == "" {
		upd := RouteUpdate{Generation: gen, Applied: true, Path: o.path}
		o.mu.Unlock()
		return upd
	}

	if src == dest {
		o.path = domain.Path{}
		o.mu.Unlock()

		n := o.notify.Validation(MsgSameEndpoints)
		return RouteUpdate{Generation: gen, Applied: true, Path: domain.Path{}, Err: n.Err}
	}
	o.mu.Unlock()

	path, err := o.routes.Find(ctx, o.sessions.Current(), src, dest)

	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		// A rejected session still has to reach the user even though the
		// sign-out that followed superseded this query.
		if errors.Is(err, backend.ErrUnauthorized) {
			o.notify.Error(err)
		}
		return RouteUpdate{Generation: gen, Queried: true, Err: err}
	}
	if err != nil {
		o.path = domain.Path{}
	} else {
		o.path = path
	}
	current := o.path
	o.mu.Unlock()

	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			o.notify.Error(err)
		} else {
			o.notify.RouteError(err)
		}
	}

	return RouteUpdate{Generation: gen, Queried: true, Applied: true, Path: current, Err: err}
}
