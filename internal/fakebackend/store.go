package fakebackend

import (
	"fmt"
	"sort"
	"sync"
	"vendepass-client/internal/domain"

	"github.com/google/uuid"
)

// Reason is a failure reported in the Error field of the response envelope.
type Reason string

func (r Reason) Error() string { return string(r) }

const (
	ReasonNotAuthorized   Reason = "not authorized"
	ReasonClientNotFound  Reason = "client not found"
	ReasonBadCredentials  Reason = "invalid credentials"
	ReasonAlreadyLoggedIn Reason = "more than one user logged"
	ReasonInvalidCity     Reason = "not valid city name"
	ReasonNoRoute         Reason = "no route"
	ReasonNotAvailable    Reason = "at least one flight is not available"
	ReasonNoReservation   Reason = "reservation do not exists"
	ReasonTicketNotFound  Reason = "ticket not found"
)

const hubCity = "Brasília"

const unknownFlightFmt = "some flight doesn't exist: %s"

type SeedUser struct {
	Username string
	Password string
	Name     string
}

type SeedFlight struct {
	Id    string
	Src   string
	Dest  string
	Seats int
}

type Seed struct {
	Users   []SeedUser
	Flights []SeedFlight
}

type account struct {
	SeedUser
	token string
}

type flight struct {
	id    string
	src   string
	dest  string
	seats int
}

type heldSeat struct {
	id       string
	flightID string
}

type session struct {
	username     string
	reservations []heldSeat
	tickets      []heldSeat
}

// Store is the in-memory state behind the fake booking API. All methods
// are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	cities   map[string]domain.City
	accounts map[string]*account
	sessions map[string]*session
	flights  map[string]*flight
	outbound map[string][]string
	newID    func() string
}

func NewStore(cities []domain.City, seed Seed) *Store {
	s := &Store{
		cities:   make(map[string]domain.City, len(cities)),
		accounts: make(map[string]*account, len(seed.Users)),
		sessions: make(map[string]*session),
		flights:  make(map[string]*flight, len(seed.Flights)),
		outbound: make(map[string][]string),
		newID:    uuid.NewString,
	}
	for _, c := range cities {
		s.cities[c.Name] = c
	}
	for _, u := range seed.Users {
		s.accounts[u.Username] = &account{SeedUser: u}
	}
	for _, f := range seed.Flights {
		s.flights[f.Id] = &flight{id: f.Id, src: f.Src, dest: f.Dest, seats: f.Seats}
		s.outbound[f.Src] = append(s.outbound[f.Src], f.Id)
	}
	for src := range s.outbound {
		sort.Strings(s.outbound[src])
	}
	return s
}

// DefaultSeed links every city to its two nearest neighbours and to
// Brasília when present, in both directions, with the given seat count per flight.
func DefaultSeed(cities []domain.City, seats int) Seed {
	seed := Seed{
		Users: []SeedUser{
			{Username: "alice", Password: "secret", Name: "Alice"},
			{Username: "bruno", Password: "secret", Name: "Bruno"},
		},
	}

	type edge struct{ a, b string }
	seen := make(map[edge]struct{})
	add := func(a, b string) {
		if a == b {
			return
		}
		if _, ok := seen[edge{a, b}]; ok {
			return
		}
		seen[edge{a, b}] = struct{}{}
		seen[edge{b, a}] = struct{}{}
		seed.Flights = append(seed.Flights,
			SeedFlight{Id: flightID(a, b), Src: a, Dest: b, Seats: seats},
			SeedFlight{Id: flightID(b, a), Src: b, Dest: a, Seats: seats},
		)
	}

	hub := false
	for _, c := range cities {
		hub = hub || c.Name == hubCity
	}

	sorted := append([]domain.City(nil), cities...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, c := range sorted {
		others := make([]domain.City, 0, len(sorted)-1)
		for _, o := range sorted {
			if o.Name != c.Name {
				others = append(others, o)
			}
		}
		sort.SliceStable(others, func(i, j int) bool {
			return c.Coordinates().DistanceKm(others[i].Coordinates()) < c.Coordinates().DistanceKm(others[j].Coordinates())
		})
		for _, o := range others[:min(2, len(others))] {
			add(c.Name, o.Name)
		}
		if hub {
			add(c.Name, hubCity)
		}
	}

	return seed
}

// Stable ids so restarts of the fake keep flight ids valid.
func flightID(src, dest string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("flight:"+src+"->"+dest)).String()
}

func (s *Store) session(token string) (*session, error) {
	if token == "" {
		return nil, ReasonNotAuthorized
	}
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ReasonNotAuthorized
	}
	return sess, nil
}

func (s *Store) Login(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[username]
	if !ok {
		return "", ReasonClientNotFound
	}
	if acc.Password != password {
		return "", ReasonBadCredentials
	}
	if acc.token != "" {
		return "", ReasonAlreadyLoggedIn
	}

	acc.token = s.newID()
	s.sessions[acc.token] = &session{username: username}
	return acc.token, nil
}

// Logout ends the session. Held reservations are released.
func (s *Store) Logout(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return err
	}
	for _, r := range sess.reservations {
		s.flights[r.flightID].seats++
	}
	s.accounts[sess.username].token = ""
	delete(s.sessions, token)
	return nil
}

func (s *Store) User(token string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return domain.User{}, err
	}
	acc := s.accounts[sess.username]
	return domain.User{Name: acc.Name, Username: acc.Username}, nil
}

// Route returns the path with the fewest flights between two cities.
func (s *Store) Route(token, src, dest string) (domain.Path, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.session(token); err != nil {
		return nil, err
	}
	if _, ok := s.cities[src]; !ok {
		return nil, ReasonInvalidCity
	}
	if _, ok := s.cities[dest]; !ok {
		return nil, ReasonInvalidCity
	}

	ids, ok := s.breadthFirst(src, dest)
	if !ok {
		return nil, ReasonNoRoute
	}

	path := make(domain.Path, 0, len(ids))
	for _, id := range ids {
		f := s.flights[id]
		path = append(path, domain.PathSegment{
			FlightId: id,
			Path:     []domain.PathPoint{s.point(f.src), s.point(f.dest)},
		})
	}
	return path, nil
}

func (s *Store) breadthFirst(src, dest string) ([]string, bool) {
	if src == dest {
		return nil, false
	}

	via := map[string]string{src: ""}
	queue := []string{src}
	for len(queue) > 0 {
		city := queue[0]
		queue = queue[1:]

		for _, id := range s.outbound[city] {
			next := s.flights[id].dest
			if _, seen := via[next]; seen {
				continue
			}
			via[next] = id
			if next == dest {
				return s.unwind(via, src, dest), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func (s *Store) unwind(via map[string]string, src, dest string) []string {
	var ids []string
	for city := dest; city != src; {
		id := via[city]
		ids = append(ids, id)
		city = s.flights[id].src
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

func (s *Store) point(name string) domain.PathPoint {
	c := s.cities[name]
	return domain.PathPoint{Name: c.Name, State: c.State, Country: "Brasil", Latitude: c.Latitude, Longitude: c.Longitude}
}

func (s *Store) Flights(token string, ids []string) ([]domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.session(token); err != nil {
		return nil, err
	}
	return s.lookupFlights(ids)
}

func (s *Store) lookupFlights(ids []string) ([]domain.Flight, error) {
	out := make([]domain.Flight, 0, len(ids))
	for _, id := range ids {
		f, ok := s.flights[id]
		if !ok {
			return nil, unknownFlight(id)
		}
		out = append(out, domain.Flight{Src: f.src, Dest: f.dest, Seats: f.seats})
	}
	return out, nil
}

// Reserve holds one seat on every flight, or on none of them.
func (s *Store) Reserve(token string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return ReasonNotAvailable
	}
	for _, id := range ids {
		f, ok := s.flights[id]
		if !ok {
			return unknownFlight(id)
		}
		if f.seats <= 0 {
			return ReasonNotAvailable
		}
	}

	for _, id := range ids {
		s.flights[id].seats--
		sess.reservations = append(sess.reservations, heldSeat{id: s.newID(), flightID: id})
	}
	return nil
}

func (s *Store) Cart(token string) ([]domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(sess.reservations))
	for _, r := range sess.reservations {
		f := s.flights[r.flightID]
		out = append(out, domain.Reservation{Id: r.id, Src: s.cities[f.src], Dest: s.cities[f.dest]})
	}
	return out, nil
}

// Purchase turns a held seat into a ticket with the same flight.
func (s *Store) Purchase(token, reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return err
	}
	i := indexOf(sess.reservations, reservationID)
	if i < 0 {
		return ReasonNoReservation
	}

	r := sess.reservations[i]
	sess.reservations = append(sess.reservations[:i:i], sess.reservations[i+1:]...)
	sess.tickets = append(sess.tickets, heldSeat{id: s.newID(), flightID: r.flightID})
	return nil
}

func (s *Store) CancelReservation(token, reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return err
	}
	i := indexOf(sess.reservations, reservationID)
	if i < 0 {
		return ReasonNoReservation
	}

	s.flights[sess.reservations[i].flightID].seats++
	sess.reservations = append(sess.reservations[:i:i], sess.reservations[i+1:]...)
	return nil
}

func (s *Store) Tickets(token string) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Ticket, 0, len(sess.tickets))
	for _, t := range sess.tickets {
		f := s.flights[t.flightID]
		out = append(out, domain.Ticket{Id: t.id, Src: s.cities[f.src], Dest: s.cities[f.dest]})
	}
	return out, nil
}

func (s *Store) CancelTicket(token, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return err
	}
	i := indexOf(sess.tickets, ticketID)
	if i < 0 {
		return ReasonTicketNotFound
	}

	s.flights[sess.tickets[i].flightID].seats++
	sess.tickets = append(sess.tickets[:i:i], sess.tickets[i+1:]...)
	return nil
}

// Seats reports a flight's remaining seats, or -1 when it does not exist.
func (s *Store) Seats(flightID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[flightID]
	if !ok {
		return -1
	}
	return f.seats
}

func indexOf(items []heldSeat, id string) int {
	for i, it := range items {
		if it.id == id {
			return i
		}
	}
	return -1
}

func unknownFlight(id string) error {
	return Reason(fmt.Sprintf(unknownFlightFmt, id))
}
