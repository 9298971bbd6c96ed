package services

import (
	"context"
	"errors"
	"testing"
	"time"
	"vendepass-client/internal/adapters/backend"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestratorDefaultsToIdle(t *testing.T) {
	w, _, _ := newTestWorkflow(t)

	assert.Equal(t, ScreenIdle, w.Orchestrator.Screen())
	assert.Empty(t, w.Orchestrator.Path())

	for _, s := range []Screen{ScreenMap, ScreenCart, ScreenTickets, ScreenIdle} {
		w.Orchestrator.Select(s)
		assert.Equal(t, s, w.Orchestrator.Screen())
	}
}

func TestIncompleteSelectionDoesNotQuery(t *testing.T) {
	w, mock, _ := newTestWorkflow(t)
	signIn(w)

	upd := w.Orchestrator.SetSource(context.Background(), "São Paulo")

	assert.False(t, upd.Queried)
	assert.Zero(t, mock.CallCount("Route"))
	assert.Equal(t, "São Paulo", w.Orchestrator.Source())
	assert.Empty(t, w.Orchestrator.Destination())
}

func TestEqualEndpointsNeverQueryAndClearPath(t *testing.T) {
	ctx := context.Background()

	for _, city := range []string{"São Paulo", "Rio de Janeiro", "Salvador", "Brasília"} {
		t.Run(city, func(t *testing.T) {
			w, mock, notices := newTestWorkflow(t)
			signIn(w)

			// Start from a non-empty path so clearing is observable.
			w.Orchestrator.SetSource(ctx, "São Paulo")
			w.Orchestrator.SetDestination(ctx, "Rio de Janeiro")
			require.Equal(t, pathSPtoRJ, w.Orchestrator.Path())

			w.Orchestrator.SetSource(ctx, city)
			before := mock.CallCount("Route")
			upd := w.Orchestrator.SetDestination(ctx, city)

			assert.False(t, upd.Queried)
			assert.Equal(t, before, mock.CallCount("Route"))
			assert.Empty(t, w.Orchestrator.Path())
			assert.NotNil(t, w.Orchestrator.Path())

			last := notices.last()
			assert.Equal(t, ports.KindValidation, last.Kind)
			assert.Equal(t, MsgSameEndpoints, last.Message)
		})
	}
}

func TestSuccessfulRouteReplacesPathExactly(t *testing.T) {
	ctx := context.Background()
	w, _, notices := newTestWorkflow(t)
	signIn(w)

	w.Orchestrator.SetSource(ctx, "São Paulo")

	upd := w.Orchestrator.SetDestination(ctx, "Rio de Janeiro")
	require.NoError(t, upd.Err)
	assert.True(t, upd.Applied)
	assert.Equal(t, pathSPtoRJ, w.Orchestrator.Path())

	upd = w.Orchestrator.SetDestination(ctx, "Salvador")
	require.NoError(t, upd.Err)
	assert.Equal(t, pathSPtoSSA, w.Orchestrator.Path())
	assert.Equal(t, pathSPtoSSA, upd.Path)

	assert.Empty(t, notices.all())
}

func TestEmptyRouteIsAppliedAsEmptyPath(t *testing.T) {
	ctx := context.Background()
	w, mock, notices := newTestWorkflow(t)
	signIn(w)
	mock.Paths["Salvador|Brasília"] = domain.Path{}

	w.Orchestrator.SetSource(ctx, "Salvador")
	upd := w.Orchestrator.SetDestination(ctx, "Brasília")

	require.NoError(t, upd.Err)
	assert.Equal(t, domain.Path{}, w.Orchestrator.Path())
	assert.Empty(t, notices.all())
}

func TestSameCityThenDistinctCityScenario(t *testing.T) {
	ctx := context.Background()
	w, mock, notices := newTestWorkflow(t)
	signIn(w)

	w.Orchestrator.SetSource(ctx, "São Paulo")
	w.Orchestrator.SetDestination(ctx, "São Paulo")

	assert.Equal(t, ports.KindValidation, notices.last().Kind)
	assert.Empty(t, w.Orchestrator.Path())
	assert.Zero(t, mock.CallCount("Route"))

	w.Orchestrator.SetDestination(ctx, "Rio de Janeiro")

	calls := mock.Calls()
	require.NotEmpty(t, calls)
	last := calls[len(calls)-1]
	assert.Equal(t, "Route", last.Method)
	assert.Equal(t, []string{"São Paulo", "Rio de Janeiro"}, last.Args)
	assert.Equal(t, pathSPtoRJ, w.Orchestrator.Path())
}

func TestRouteFailureClearsPathAndNotifies(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		err  error
		kind ports.Kind
	}{
		{name: "domain", err: &backend.DomainError{Op: "route", Reason: "no route"}, kind: ports.KindDomain},
		{name: "transport", err: errors.New("dial tcp: connection refused"), kind: ports.KindTransport},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, mock, notices := newTestWorkflow(t)
			signIn(w)

			w.Orchestrator.SetSource(ctx, "São Paulo")
			w.Orchestrator.SetDestination(ctx, "Rio de Janeiro")
			require.NotEmpty(t, w.Orchestrator.Path())

			mock.Errs["Route"] = tc.err
			upd := w.Orchestrator.SetDestination(ctx, "Salvador")

			assert.Error(t, upd.Err)
			assert.Empty(t, w.Orchestrator.Path())
			assert.Equal(t, tc.kind, notices.last().Kind)
			assert.Equal(t, MsgNoRoute, notices.last().Message)
		})
	}
}

func TestUnknownPairReportsNoRoute(t *testing.T) {
	ctx := context.Background()
	w, _, notices := newTestWorkflow(t)
	signIn(w)

	w.Orchestrator.SetSource(ctx, "Salvador")
	w.Orchestrator.SetDestination(ctx, "Rio de Janeiro")

	assert.Empty(t, w.Orchestrator.Path())
	assert.Equal(t, MsgNoRoute, notices.last().Message)
}

func TestSupersededRouteResultIsDropped(t *testing.T) {
	ctx := context.Background()
	w, mock, _ := newTestWorkflow(t)
	signIn(w)

	entered := make(chan struct{})
	release := make(chan struct{})
	mock.RouteHook = func(ctx context.Context, src, dest string) (domain.Path, error) {
		if dest == "Rio de Janeiro" {
			close(entered)
			<-release
			return pathSPtoRJ, nil
		}
		return pathSPtoSSA, nil
	}

	w.Orchestrator.SetSource(ctx, "São Paulo")

	slow := make(chan RouteUpdate, 1)
	go func() {
		slow <- w.Orchestrator.SetDestination(ctx, "Rio de Janeiro")
	}()
	<-entered

	fast := w.Orchestrator.SetDestination(ctx, "Salvador")
	require.True(t, fast.Applied)
	assert.Equal(t, pathSPtoSSA, w.Orchestrator.Path())

	close(release)
	var stale RouteUpdate
	select {
	case stale = <-slow:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded query never returned")
	}

	assert.True(t, stale.Queried)
	assert.False(t, stale.Applied)
	assert.Less(t, stale.Generation, fast.Generation)
	assert.Equal(t, pathSPtoSSA, w.Orchestrator.Path())
}

func TestRejectedSessionSignsOut(t *testing.T) {
	ctx := context.Background()
	w, _, notices := newTestWorkflow(t)
	w.Sessions.Set(staleSession)

	w.Orchestrator.Select(ScreenMap)
	w.Orchestrator.SetSource(ctx, "São Paulo")
	upd := w.Orchestrator.SetDestination(ctx, "Rio de Janeiro")

	assert.ErrorIs(t, upd.Err, backend.ErrUnauthorized)
	assert.False(t, w.Sessions.Authenticated())
	assert.Equal(t, ScreenIdle, w.Orchestrator.Screen())
	assert.Empty(t, w.Orchestrator.Source())
	assert.Equal(t, ports.KindAuth, notices.last().Kind)
}
