package backend

import (
	"context"
	"fmt"
	"sync"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

var _ ports.Backend = (*MockBackend)(nil)

type MockUser struct {
	Password string
	Name     string
}

type MockCall struct {
	Method string
	Args   []string
}

// MockBackend is an in-process ports.Backend for tests. It keeps cart and
// ticket state so purchase and delete flows can be exercised end to end.
//
// Errs forces a method (by name, e.g. "Purchase") to fail. RouteHook, when
// set, replaces the Paths lookup. FlightsGate, when set, runs unlocked at the
// start of Flights so tests can hold a resolution in flight. CartGate runs
// unlocked after Cart has read the reservations, holding that answer back. OnAuthFailure mirrors the Client's
// AuthFailureHandler and runs whenever a session is rejected.
type MockBackend struct {
	mu sync.Mutex

	Users        map[string]MockUser
	Token        string
	Paths        map[string]domain.Path
	FlightsByID  map[string]domain.Flight
	Reservations []domain.Reservation
	TicketList   []domain.Ticket
	Errs         map[string]error
	RouteHook    func(ctx context.Context, src, dest string) (domain.Path, error)
	FlightsGate  func(flightIDs []string)
	CartGate     func()

	OnAuthFailure func()

	calls  []MockCall
	nextID int
}

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Users:       map[string]MockUser{},
		Token:       "token-1",
		Paths:       map[string]domain.Path{},
		FlightsByID: map[string]domain.Flight{},
		Errs:        map[string]error{},
	}
}

// Calls returns a copy of every recorded call in order.
func (m *MockBackend) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns how many times method was invoked.
func (m *MockBackend) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockBackend) record(method string, args ...string) error {
	m.calls = append(m.calls, MockCall{Method: method, Args: args})
	if err, ok := m.Errs[method]; ok && err != nil {
		return err
	}
	return nil
}

func (m *MockBackend) checkSession(method string, s domain.Session) error {
	if !s.Valid() || (m.Token != "" && s.Token != m.Token) {
		if m.OnAuthFailure != nil {
			m.OnAuthFailure()
		}
		return fmt.Errorf("mock.%s: %w", method, ErrUnauthorized)
	}
	return nil
}

func (m *MockBackend) Login(ctx context.Context, username, password string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Login", username); err != nil {
		return domain.Session{}, err
	}

	u, ok := m.Users[username]
	if !ok {
		return domain.Session{}, &DomainError{Op: "mock.Login", Reason: "client not found"}
	}
	if u.Password != password {
		return domain.Session{}, &DomainError{Op: "mock.Login", Reason: "invalid credentials"}
	}
	return domain.Session{Token: m.Token}, nil
}

func (m *MockBackend) Logout(ctx context.Context, session domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Logout"); err != nil {
		return err
	}
	return m.checkSession("Logout", session)
}

func (m *MockBackend) CurrentUser(ctx context.Context, session domain.Session) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("CurrentUser"); err != nil {
		return domain.User{}, err
	}
	if err := m.checkSession("CurrentUser", session); err != nil {
		return domain.User{}, err
	}
	for username, u := range m.Users {
		return domain.User{Name: u.Name, Username: username}, nil
	}
	return domain.User{}, nil
}

func (m *MockBackend) Route(ctx context.Context, session domain.Session, src, dest string) (domain.Path, error) {
	m.mu.Lock()
	if err := m.record("Route", src, dest); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if err := m.checkSession("Route", session); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	hook := m.RouteHook
	path, ok := m.Paths[src+"|"+dest]
	m.mu.Unlock()

	// The hook runs unlocked so tests can block inside it.
	if hook != nil {
		return hook(ctx, src, dest)
	}
	if !ok {
		return nil, &DomainError{Op: "mock.Route", Reason: "no route"}
	}
	return path, nil
}

func (m *MockBackend) Flights(ctx context.Context, session domain.Session, flightIDs []string) ([]domain.Flight, error) {
	m.mu.Lock()
	gate := m.FlightsGate
	m.mu.Unlock()
	if gate != nil {
		gate(flightIDs)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Flights", flightIDs...); err != nil {
		return nil, err
	}
	if err := m.checkSession("Flights", session); err != nil {
		return nil, err
	}

	out := make([]domain.Flight, 0, len(flightIDs))
	for _, id := range flightIDs {
		f, ok := m.FlightsByID[id]
		if !ok {
			return nil, &DomainError{Op: "mock.Flights", Reason: fmt.Sprintf("some flight doesn't exist: %s", id)}
		}
		out = append(out, f)
	}
	return out, nil
}

func (m *MockBackend) Reserve(ctx context.Context, session domain.Session, flightIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Reserve", flightIDs...); err != nil {
		return err
	}
	if err := m.checkSession("Reserve", session); err != nil {
		return err
	}

	for _, id := range flightIDs {
		f := m.FlightsByID[id]
		m.nextID++
		m.Reservations = append(m.Reservations, domain.Reservation{
			Id:   fmt.Sprintf("res-%d", m.nextID),
			Src:  domain.City{Name: f.Src},
			Dest: domain.City{Name: f.Dest},
		})
	}
	return nil
}

func (m *MockBackend) Cart(ctx context.Context, session domain.Session) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Cart"); err != nil {
		return nil, err
	}
	if err := m.checkSession("Cart", session); err != nil {
		return nil, err
	}
	items := append([]domain.Reservation{}, m.Reservations...)
	if gate := m.CartGate; gate != nil {
		m.mu.Unlock()
		gate()
		m.mu.Lock()
	}
	return items, nil
}

func (m *MockBackend) Purchase(ctx context.Context, session domain.Session, reservationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Purchase", reservationID); err != nil {
		return err
	}
	if err := m.checkSession("Purchase", session); err != nil {
		return err
	}

	for i, r := range m.Reservations {
		if r.Id == reservationID {
			m.Reservations = append(m.Reservations[:i:i], m.Reservations[i+1:]...)
			m.TicketList = append(m.TicketList, domain.Ticket{Id: "tkt-" + r.Id, Src: r.Src, Dest: r.Dest})
			return nil
		}
	}
	return &DomainError{Op: "mock.Purchase", Reason: "reservation do not exists"}
}

func (m *MockBackend) DeleteReservation(ctx context.Context, session domain.Session, reservationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("DeleteReservation", reservationID); err != nil {
		return err
	}
	if err := m.checkSession("DeleteReservation", session); err != nil {
		return err
	}

	var removed bool
	m.Reservations, removed = domain.RemoveByKey(m.Reservations, reservationID)
	if !removed {
		return &DomainError{Op: "mock.DeleteReservation", Reason: "reservation do not exists"}
	}
	return nil
}

func (m *MockBackend) Tickets(ctx context.Context, session domain.Session) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Tickets"); err != nil {
		return nil, err
	}
	if err := m.checkSession("Tickets", session); err != nil {
		return nil, err
	}
	return append([]domain.Ticket{}, m.TicketList...), nil
}

func (m *MockBackend) DeleteTicket(ctx context.Context, session domain.Session, ticketID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("DeleteTicket", ticketID); err != nil {
		return err
	}
	if err := m.checkSession("DeleteTicket", session); err != nil {
		return err
	}

	var removed bool
	m.TicketList, removed = domain.RemoveByKey(m.TicketList, ticketID)
	if !removed {
		return &DomainError{Op: "mock.DeleteTicket", Reason: "ticket not found"}
	}
	return nil
}
