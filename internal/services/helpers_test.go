package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
	"vendepass-client/internal/adapters/backend"
	"vendepass-client/internal/adapters/cache"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

type noticeLog struct {
	mu      sync.Mutex
	notices []ports.Notice
}

func (l *noticeLog) Notify(n ports.Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, n)
}

func (l *noticeLog) all() []ports.Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ports.Notice(nil), l.notices...)
}

func (l *noticeLog) last() ports.Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.notices) == 0 {
		return ports.Notice{}
	}
	return l.notices[len(l.notices)-1]
}

func (l *noticeLog) count(kind ports.Kind) int {
	n := 0
	for _, notice := range l.all() {
		if notice.Kind == kind {
			n++
		}
	}
	return n
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func point(name string, lat, lon float64) domain.PathPoint {
	return domain.PathPoint{Name: name, Country: "Brasil", Latitude: lat, Longitude: lon}
}

var (
	saoPaulo      = point("São Paulo", -23.5505, -46.6333)
	rioDeJaneiro  = point("Rio de Janeiro", -22.9068, -43.1729)
	salvador      = point("Salvador", -12.9777, -38.5016)
	brasilia      = point("Brasília", -15.7939, -47.8828)
	pathSPtoRJ    = domain.Path{{FlightId: "f-sp-rj", Path: []domain.PathPoint{saoPaulo, rioDeJaneiro}}}
	pathSPtoSSA   = domain.Path{{FlightId: "f-sp-bsb", Path: []domain.PathPoint{saoPaulo, brasilia}}, {FlightId: "f-bsb-ssa", Path: []domain.PathPoint{brasilia, salvador}}}
	validSession  = domain.Session{Token: "token-1"}
	staleSession  = domain.Session{Token: "expired"}
	testFlightSet = map[string]domain.Flight{
		"f-sp-rj":   {Src: "São Paulo", Dest: "Rio de Janeiro", Seats: 3},
		"f-sp-bsb":  {Src: "São Paulo", Dest: "Brasília", Seats: 0},
		"f-bsb-ssa": {Src: "Brasília", Dest: "Salvador", Seats: 12},
	}
)

// newTestWorkflow returns a workflow over a MockBackend whose auth failures
// reset the workflow, the way the composition root wires the HTTP client.
func newTestWorkflow(t *testing.T) (*Workflow, *backend.MockBackend, *noticeLog) {
	t.Helper()

	mock := backend.NewMockBackend()
	mock.Users["alice"] = backend.MockUser{Password: "secret", Name: "Alice"}
	mock.Paths["São Paulo|Rio de Janeiro"] = pathSPtoRJ
	mock.Paths["São Paulo|Salvador"] = pathSPtoSSA
	for id, f := range testFlightSet {
		mock.FlightsByID[id] = f
	}

	notices := &noticeLog{}
	w := NewWorkflow(WorkflowDeps{
		Backend:        mock,
		CartCache:      cache.NewMemoryListCache[domain.Reservation](0),
		TicketCache:    cache.NewMemoryListCache[domain.Ticket](0),
		Notifier:       notices,
		Logger:         quietLogger,
		RequestTimeout: time.Second,
	})
	mock.OnAuthFailure = func() {
		w.HandleAuthFailure(context.Background(), backend.ErrUnauthorized)
	}

	return w, mock, notices
}

func signIn(w *Workflow) domain.Session {
	w.Sessions.Set(validSession)
	return validSession
}
