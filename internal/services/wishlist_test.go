package services

import (
	"context"
	"testing"
	"vendepass-client/internal/adapters/backend"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistResolveDecoratesPath(t *testing.T) {
	w, mock, _ := newTestWorkflow(t)
	session := signIn(w)

	items, err := w.Wishlist.Resolve(context.Background(), session, 1, pathSPtoSSA)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "f-sp-bsb", items[0].FlightId)
	assert.True(t, items[0].Full())
	assert.Equal(t, "f-bsb-ssa", items[1].FlightId)
	assert.False(t, items[1].Full())
	assert.Equal(t, 12, items[1].Flight.Seats)
	assert.Equal(t, 1, mock.CallCount("Flights"))
}

func TestWishlistEmptyPathKeepsPreviousList(t *testing.T) {
	ctx := context.Background()
	w, mock, _ := newTestWorkflow(t)
	session := signIn(w)

	first, err := w.Wishlist.Resolve(ctx, session, 1, pathSPtoRJ)
	require.NoError(t, err)

	for _, empty := range []domain.Path{nil, {}} {
		items, err := w.Wishlist.Resolve(ctx, session, 2, empty)
		require.NoError(t, err)
		assert.Equal(t, first, items)
	}
	assert.Equal(t, 1, mock.CallCount("Flights"))
}

func TestWishlistResolveFailureNotifies(t *testing.T) {
	w, _, notices := newTestWorkflow(t)
	session := signIn(w)

	unknown := domain.Path{{FlightId: "ghost", Path: []domain.PathPoint{saoPaulo, salvador}}}
	_, err := w.Wishlist.Resolve(context.Background(), session, 1, unknown)

	require.Error(t, err)
	assert.Equal(t, ports.KindDomain, notices.last().Kind)
	assert.Empty(t, w.Wishlist.Items())
}

func TestWishlistDropsOlderGeneration(t *testing.T) {
	ctx := context.Background()
	w, mock, notices := newTestWorkflow(t)
	session := signIn(w)

	newer, err := w.Wishlist.Resolve(ctx, session, 5, pathSPtoRJ)
	require.NoError(t, err)

	// An older selection finishing late must not replace the newer list.
	_, err = w.Wishlist.Resolve(ctx, session, 4, pathSPtoSSA)
	require.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, newer, w.Wishlist.Items())
	assert.Equal(t, 1, mock.CallCount("Flights"))

	// Even its failure stays silent.
	before := len(notices.all())
	unknown := domain.Path{{FlightId: "ghost", Path: []domain.PathPoint{saoPaulo, salvador}}}
	_, err = w.Wishlist.Resolve(ctx, session, 3, unknown)
	require.ErrorIs(t, err, ErrSuperseded)
	assert.Len(t, notices.all(), before)

	// The same or a newer generation still applies.
	items, err := w.Wishlist.Resolve(ctx, session, 6, pathSPtoSSA)
	require.NoError(t, err)
	assert.Equal(t, "f-sp-bsb", items[0].FlightId)
	assert.Equal(t, items, w.Wishlist.Items())
}

func TestWishlistDropsResultSupersededInFlight(t *testing.T) {
	ctx := context.Background()
	w, mock, notices := newTestWorkflow(t)
	session := signIn(w)

	entered := make(chan struct{})
	release := make(chan struct{})
	mock.FlightsGate = func(ids []string) {
		if ids[0] == "f-sp-bsb" {
			close(entered)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := w.Wishlist.Resolve(ctx, session, 1, pathSPtoSSA)
		done <- err
	}()
	<-entered

	newer, err := w.Wishlist.Resolve(ctx, session, 2, pathSPtoRJ)
	require.NoError(t, err)

	close(release)
	require.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, newer, w.Wishlist.Items())
	assert.Zero(t, notices.count(ports.KindTransport)+notices.count(ports.KindDomain))
}

func TestWishlistReserveSubmitsWholePath(t *testing.T) {
	ctx := context.Background()
	w, mock, notices := newTestWorkflow(t)
	session := signIn(w)

	// Prime the cart cache; a successful reservation must invalidate it.
	_, err := w.Cart.List(ctx, session)
	require.NoError(t, err)

	require.NoError(t, w.Wishlist.Reserve(ctx, session, pathSPtoSSA))

	var reserve backend.MockCall
	for _, c := range mock.Calls() {
		if c.Method == "Reserve" {
			reserve = c
		}
	}
	assert.Equal(t, []string{"f-sp-bsb", "f-bsb-ssa"}, reserve.Args)
	assert.Equal(t, 1, mock.CallCount("Reserve"))
	assert.Equal(t, ports.KindInfo, notices.last().Kind)

	cart, err := w.Cart.List(ctx, session)
	require.NoError(t, err)
	assert.Len(t, cart, 2)
	assert.Equal(t, 2, mock.CallCount("Cart"))
}

func TestWishlistReserveSurfacesErrors(t *testing.T) {
	ctx := context.Background()
	w, mock, notices := newTestWorkflow(t)
	session := signIn(w)

	mock.Errs["Reserve"] = &backend.DomainError{Op: "reserve", Reason: "at least one flight is not available"}
	err := w.Wishlist.Reserve(ctx, session, pathSPtoRJ)

	require.Error(t, err)
	assert.Equal(t, ports.KindDomain, notices.last().Kind)
	assert.Equal(t, "Pelo menos um voo não está mais disponível.", notices.last().Message)

	err = w.Wishlist.Reserve(ctx, session, domain.Path{})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, mock.CallCount("Reserve"))
}
