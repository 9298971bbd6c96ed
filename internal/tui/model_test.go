package tui

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
	"vendepass-client/internal/adapters/backend"
	"vendepass-client/internal/adapters/cache"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
	"vendepass-client/internal/services"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noticeRecorder struct {
	mu      sync.Mutex
	notices []ports.Notice
}

func (r *noticeRecorder) Notify(n ports.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Message)
	}
	return out
}

var (
	rio = domain.City{Name: "Rio de Janeiro", State: "RJ", Latitude: -22.9068, Longitude: -43.1729}
	sp  = domain.City{Name: "São Paulo", State: "SP", Latitude: -23.5505, Longitude: -46.6333}

	rioToSP = domain.Path{{FlightId: "f-rj-sp", Path: []domain.PathPoint{
		{Name: rio.Name, Latitude: rio.Latitude, Longitude: rio.Longitude},
		{Name: sp.Name, Latitude: sp.Latitude, Longitude: sp.Longitude},
	}}}
	spToRio = domain.Path{{FlightId: "f-sp-rj", Path: []domain.PathPoint{
		{Name: sp.Name, Latitude: sp.Latitude, Longitude: sp.Longitude},
		{Name: rio.Name, Latitude: rio.Latitude, Longitude: rio.Longitude},
	}}}
)

func newTestModel(t *testing.T) (Model, *backend.MockBackend, *noticeRecorder) {
	t.Helper()

	catalog, err := services.NewCatalog([]domain.City{sp, rio})
	require.NoError(t, err)

	mock := backend.NewMockBackend()
	mock.Users["alice"] = backend.MockUser{Password: "secret", Name: "Alice"}
	mock.Paths[rio.Name+"|"+sp.Name] = rioToSP
	mock.Paths[sp.Name+"|"+rio.Name] = spToRio
	mock.FlightsByID["f-rj-sp"] = domain.Flight{Src: rio.Name, Dest: sp.Name, Seats: 4}
	mock.FlightsByID["f-sp-rj"] = domain.Flight{Src: sp.Name, Dest: rio.Name, Seats: 0}

	notices := &noticeRecorder{}
	wf := services.NewWorkflow(services.WorkflowDeps{
		Backend:        mock,
		Catalog:        catalog,
		CartCache:      cache.NewMemoryListCache[domain.Reservation](0),
		TicketCache:    cache.NewMemoryListCache[domain.Ticket](0),
		Notifier:       notices,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		RequestTimeout: time.Second,
	})
	mock.OnAuthFailure = func() { wf.HandleAuthFailure(t.Context(), backend.ErrUnauthorized) }

	return NewModel(wf, WithFadeDelay(0)), mock, notices
}

// drive feeds model the results of cmd until no command of ours remains.
// Commands from bubbles components and tea.Quit end the chain.
func drive(t *testing.T, model Model, cmd tea.Cmd) Model {
	t.Helper()

	var next tea.Model = model
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 20, "command chain did not settle")

		msg := cmd()
		switch msg.(type) {
		case loginResultMsg, accountMsg, routeMsg, wishlistMsg, reservedMsg,
			cartMsg, ticketsMsg, signedOutMsg, noticeMsg, noticeFadeMsg, logRecordMsg, logFadeMsg:
		default:
			return next.(Model)
		}
		next, cmd = next.Update(msg)
	}
	return next.(Model)
}

func press(t *testing.T, model Model, keys ...string) Model {
	t.Helper()

	for _, k := range keys {
		next, cmd := model.Update(keyMsg(k))
		model = drive(t, next.(Model), cmd)
	}
	return model
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()

	for _, r := range text {
		model = press(t, model, string(r))
	}
	return model
}

func signIn(t *testing.T, model Model) Model {
	t.Helper()

	model = typeText(t, model, "alice")
	model = press(t, model, "tab")
	model = typeText(t, model, "secret")
	model = press(t, model, "enter")
	require.True(t, model.signedIn)
	return model
}

func TestLoginLoadsAccount(t *testing.T) {
	model, _, _ := newTestModel(t)

	assert.Contains(t, model.View(), "Usuário")

	model = signIn(t, model)
	assert.Equal(t, "Alice", model.user.Name)
	assert.Equal(t, services.ScreenIdle, model.workflow.Orchestrator.Screen())
	assert.Contains(t, model.View(), "Alice")
	assert.Empty(t, model.password.Value())
}

func TestLoginFailureStaysOnForm(t *testing.T) {
	model, _, notices := newTestModel(t)

	model = typeText(t, model, "alice")
	model = press(t, model, "tab")
	model = typeText(t, model, "wrong")
	model = press(t, model, "enter")

	assert.False(t, model.signedIn)
	assert.False(t, model.busy)
	assert.Contains(t, notices.messages(), "Credenciais inválidas")
}

func TestLoginRequiresBothFields(t *testing.T) {
	model, mock, notices := newTestModel(t)

	model = press(t, model, "enter")

	assert.False(t, model.signedIn)
	assert.Zero(t, mock.CallCount("Login"))
	assert.Contains(t, notices.messages(), services.MsgMissingLogin)
}

func TestMapSelectionResolvesWishlist(t *testing.T) {
	model, _, notices := newTestModel(t)
	model = signIn(t, model)

	model = press(t, model, "1")
	require.Equal(t, services.ScreenMap, model.workflow.Orchestrator.Screen())
	require.Equal(t, []string{rio.Name, sp.Name}, model.cities)

	// Source and destination both start on the first city.
	model = press(t, model, "s", "d")
	assert.Contains(t, notices.messages(), services.MsgSameEndpoints)
	assert.Empty(t, model.path)

	model = press(t, model, "d")
	require.Len(t, model.path, 1)
	require.Len(t, model.wishlist, 1)
	assert.Equal(t, 4, model.wishlist[0].Flight.Seats)

	view := model.View()
	assert.Contains(t, view, "Origem")
	assert.Contains(t, view, "Rio de Janeiro (RJ)")
	assert.Contains(t, view, "São Paulo (SP)")
	assert.Contains(t, view, "4 assento(s)")
}

func TestLateWishlistOfOlderRouteIsDropped(t *testing.T) {
	model, _, _ := newTestModel(t)
	model = signIn(t, model)
	model = press(t, model, "1", "s", "d")

	// Rio de Janeiro -> São Paulo: apply the route but hold its resolution.
	next, cmd := model.Update(keyMsg("d"))
	next, heldResolve := next.Update(cmd())
	model = next.(Model)
	require.NotNil(t, heldResolve)
	require.Equal(t, "f-rj-sp", model.path[0].FlightId)

	// São Paulo -> Rio de Janeiro completes before the held resolution.
	model = press(t, model, "S", "D")
	require.Equal(t, "f-sp-rj", model.path[0].FlightId)
	require.Len(t, model.wishlist, 1)
	require.Equal(t, "f-sp-rj", model.wishlist[0].FlightId)

	model = drive(t, model, heldResolve)

	assert.Equal(t, "f-sp-rj", model.path[0].FlightId)
	require.Len(t, model.wishlist, 1)
	assert.Equal(t, "f-sp-rj", model.wishlist[0].FlightId)
	assert.Equal(t, "f-sp-rj", model.workflow.Wishlist.Items()[0].FlightId)
	assert.Contains(t, model.View(), "lotado")
}

func TestReservePurchaseFlow(t *testing.T) {
	model, mock, _ := newTestModel(t)
	model = signIn(t, model)

	model = press(t, model, "1", "s", "d", "d", "r")
	assert.Equal(t, 1, mock.CallCount("Reserve"))

	model = press(t, model, "3")
	require.Len(t, model.cart, 1)
	assert.Contains(t, model.View(), "Rio de Janeiro → São Paulo")

	model = press(t, model, "enter")
	assert.Empty(t, model.cart)

	model = press(t, model, "2")
	require.Len(t, model.tickets, 1)
	assert.Equal(t, "tkt-res-1", model.tickets[0].Id)

	model = press(t, model, "x")
	assert.Empty(t, model.tickets)
}

func TestRejectedSessionReturnsToLogin(t *testing.T) {
	model, mock, _ := newTestModel(t)
	model = signIn(t, model)

	mock.Token = "rotated"
	model = press(t, model, "1", "s", "d", "d")

	assert.False(t, model.signedIn)
	assert.False(t, model.workflow.Sessions.Authenticated())
	assert.Contains(t, model.View(), "Usuário")
}

func TestLogoutClearsState(t *testing.T) {
	model, mock, _ := newTestModel(t)
	model = signIn(t, model)
	model = press(t, model, "1", "s", "d", "d")
	require.NotEmpty(t, model.path)

	model = press(t, model, "L")

	assert.False(t, model.signedIn)
	assert.Empty(t, model.path)
	assert.Equal(t, -1, model.sourceIndex)
	assert.Equal(t, 1, mock.CallCount("Logout"))
	assert.Equal(t, services.ScreenIdle, model.workflow.Orchestrator.Screen())
}

func TestNoticeFadesOnlyLatest(t *testing.T) {
	model, _, _ := newTestModel(t)

	next, _ := model.Update(noticeMsg{Kind: ports.KindInfo, Message: "primeiro"})
	next, _ = next.Update(noticeMsg{Kind: ports.KindInfo, Message: "segundo"})
	model = next.(Model)

	next, _ = model.Update(noticeFadeMsg{seq: 1})
	assert.Equal(t, "segundo", next.(Model).notice.Message)

	next, _ = next.Update(noticeFadeMsg{seq: 2})
	assert.Empty(t, next.(Model).notice.Message)
}

func TestAuthNoticeReturnsToLogin(t *testing.T) {
	model, _, _ := newTestModel(t)
	model = signIn(t, model)

	next, _ := model.Update(noticeMsg{Kind: ports.KindAuth, Message: services.MsgSessionEnded})

	assert.False(t, next.(Model).signedIn)
	assert.Contains(t, next.View(), services.MsgSessionEnded)
}

func TestLogRecordShownInStatusBar(t *testing.T) {
	model, _, _ := newTestModel(t)
	model = signIn(t, model)

	next, _ := model.Update(logRecordMsg{Summary: "cache unavailable", Level: slog.LevelWarn})

	assert.True(t, strings.Contains(next.View(), "cache unavailable"))
}

func TestLogRecordFadesOnlyLatest(t *testing.T) {
	model, _, _ := newTestModel(t)
	model = signIn(t, model)

	next, cmd := model.Update(logRecordMsg{Summary: "cache unavailable", Level: slog.LevelWarn})
	assert.Nil(t, cmd, "fading is disabled in tests")
	next, _ = next.Update(logRecordMsg{Summary: "redis timeout", Level: slog.LevelError})

	next, _ = next.Update(logFadeMsg{seq: 1})
	assert.Equal(t, "redis timeout", next.(Model).logLine)

	next, _ = next.Update(logFadeMsg{seq: 2})
	assert.Empty(t, next.(Model).logLine)
	assert.NotContains(t, next.View(), "redis timeout")
}

func TestLogRecordSchedulesFade(t *testing.T) {
	model, _, _ := newTestModel(t)
	model.logFadeDelay = time.Millisecond

	_, cmd := model.Update(logRecordMsg{Summary: "cache unavailable", Level: slog.LevelWarn})
	require.NotNil(t, cmd)
	assert.Equal(t, logFadeMsg{seq: 1}, cmd())
}

func TestStepWraps(t *testing.T) {
	assert.Equal(t, 0, step(-1, 1, 3))
	assert.Equal(t, 2, step(-1, -1, 3))
	assert.Equal(t, 0, step(2, 1, 3))
	assert.Equal(t, 2, step(0, -1, 3))
}
