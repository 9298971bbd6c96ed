package fakebackend

import (
	"testing"
	"vendepass-client/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCities = []domain.City{
	{Name: "Brasília", State: "DF", Latitude: -15.7939, Longitude: -47.8828},
	{Name: "São Paulo", State: "SP", Latitude: -23.5505, Longitude: -46.6333},
	{Name: "Rio de Janeiro", State: "RJ", Latitude: -22.9068, Longitude: -43.1729},
	{Name: "Salvador", State: "BA", Latitude: -12.9777, Longitude: -38.5016},
	{Name: "Manaus", State: "AM", Latitude: -3.119, Longitude: -60.0217},
}

// A chain SP -> RJ -> SSA plus a direct SP -> BSB with no seats.
func chainSeed() Seed {
	return Seed{
		Users: []SeedUser{{Username: "alice", Password: "secret", Name: "Alice"}},
		Flights: []SeedFlight{
			{Id: "sp-rj", Src: "São Paulo", Dest: "Rio de Janeiro", Seats: 2},
			{Id: "rj-ssa", Src: "Rio de Janeiro", Dest: "Salvador", Seats: 1},
			{Id: "sp-bsb", Src: "São Paulo", Dest: "Brasília", Seats: 0},
		},
	}
}

func loggedIn(t *testing.T, seed Seed) (*Store, string) {
	t.Helper()
	s := NewStore(testCities, seed)
	tok, err := s.Login("alice", "secret")
	require.NoError(t, err)
	return s, tok
}

func TestLoginRules(t *testing.T) {
	s := NewStore(testCities, chainSeed())

	_, err := s.Login("nobody", "x")
	assert.Equal(t, ReasonClientNotFound, err)

	_, err = s.Login("alice", "wrong")
	assert.Equal(t, ReasonBadCredentials, err)

	tok, err := s.Login("alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	_, err = s.Login("alice", "secret")
	assert.Equal(t, ReasonAlreadyLoggedIn, err)

	require.NoError(t, s.Logout(tok))
	assert.Equal(t, ReasonNotAuthorized, s.Logout(tok))

	_, err = s.Login("alice", "secret")
	assert.NoError(t, err)
}

func TestRouteFindsFewestHops(t *testing.T) {
	s, tok := loggedIn(t, chainSeed())

	path, err := s.Route(tok, "São Paulo", "Salvador")
	require.NoError(t, err)
	assert.Equal(t, []string{"sp-rj", "rj-ssa"}, path.FlightIDs())

	src, dest, ok := path[1].Endpoints()
	require.True(t, ok)
	assert.Equal(t, "Rio de Janeiro", src.Name)
	assert.Equal(t, "Salvador", dest.Name)
	assert.Equal(t, "BA", dest.State)

	_, err = s.Route(tok, "Salvador", "São Paulo")
	assert.Equal(t, ReasonNoRoute, err)

	_, err = s.Route(tok, "São Paulo", "Atlantis")
	assert.Equal(t, ReasonInvalidCity, err)

	_, err = s.Route("bogus", "São Paulo", "Salvador")
	assert.Equal(t, ReasonNotAuthorized, err)
}

func TestReserveHoldsSeatsAtomically(t *testing.T) {
	s, tok := loggedIn(t, chainSeed())

	assert.Equal(t, ReasonNotAvailable, s.Reserve(tok, []string{"sp-rj", "sp-bsb"}))
	assert.Equal(t, 2, s.Seats("sp-rj"))

	require.NoError(t, s.Reserve(tok, []string{"sp-rj", "rj-ssa"}))
	assert.Equal(t, 1, s.Seats("sp-rj"))
	assert.Equal(t, 0, s.Seats("rj-ssa"))

	cart, err := s.Cart(tok)
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.Equal(t, "São Paulo", cart[0].Src.Name)
	assert.Equal(t, "Salvador", cart[1].Dest.Name)

	err = s.Reserve(tok, []string{"ghost"})
	assert.EqualError(t, err, "some flight doesn't exist: ghost")
}

func TestPurchaseAndCancel(t *testing.T) {
	s, tok := loggedIn(t, chainSeed())
	require.NoError(t, s.Reserve(tok, []string{"sp-rj", "rj-ssa"}))

	cart, err := s.Cart(tok)
	require.NoError(t, err)

	require.NoError(t, s.Purchase(tok, cart[0].Id))
	assert.Equal(t, ReasonNoReservation, s.Purchase(tok, cart[0].Id))

	tickets, err := s.Tickets(tok)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "Rio de Janeiro", tickets[0].Dest.Name)

	require.NoError(t, s.CancelReservation(tok, cart[1].Id))
	assert.Equal(t, 1, s.Seats("rj-ssa"))

	require.NoError(t, s.CancelTicket(tok, tickets[0].Id))
	assert.Equal(t, 2, s.Seats("sp-rj"))
	assert.Equal(t, ReasonTicketNotFound, s.CancelTicket(tok, tickets[0].Id))
}

func TestDefaultSeedConnectsThroughHub(t *testing.T) {
	seed := DefaultSeed(testCities, 5)
	s := NewStore(testCities, seed)
	tok, err := s.Login("alice", "secret")
	require.NoError(t, err)

	for _, a := range testCities {
		for _, b := range testCities {
			if a.Name == b.Name {
				continue
			}
			path, err := s.Route(tok, a.Name, b.Name)
			require.NoError(t, err, "%s -> %s", a.Name, b.Name)
			assert.LessOrEqual(t, len(path), 2)
		}
	}

	again := DefaultSeed(testCities, 5)
	assert.Equal(t, seed.Flights, again.Flights)
}
