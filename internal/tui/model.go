// Package tui is the terminal front end of the booking client. It renders
// workflow state and runs every backend call as a tea.Cmd.
package tui

import (
	"context"
	"log/slog"
	"time"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
	"vendepass-client/internal/services"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// How long a notice or log line stays in the status bar.
const (
	noticeFadeDelay = 5 * time.Second
	logFadeDelay    = 10 * time.Second
)

const (
	fieldUsername = iota
	fieldPassword
)

// Screen cycle order for the tab key.
var screenOrder = []services.Screen{
	services.ScreenIdle,
	services.ScreenMap,
	services.ScreenTickets,
	services.ScreenCart,
}

// Model is the bubbletea model. Before sign-in it shows the login form;
// afterwards it mirrors the orchestrator's screen.
type Model struct {
	workflow     *services.Workflow
	ctx          context.Context
	keys         KeyMap
	styles       styles
	fadeDelay    time.Duration
	logFadeDelay time.Duration

	width  int
	height int

	signedIn bool
	busy     bool
	username textinput.Model
	password textinput.Model
	focus    int

	cities      []string
	sourceIndex int
	destIndex   int

	user         domain.User
	routeGen     uint64
	path         domain.Path
	wishlist     []services.WishItem
	cart         []domain.Reservation
	cartCursor   int
	tickets      []domain.Ticket
	ticketCursor int

	notice    ports.Notice
	noticeSeq int
	logLine   string
	logLevel  slog.Level
	logSeq    int
}

type Option func(*Model)

// WithContext sets the parent context of every backend call.
func WithContext(ctx context.Context) Option {
	return func(model *Model) { model.ctx = ctx }
}

func WithKeyMap(keys KeyMap) Option {
	return func(model *Model) { model.keys = keys }
}

func WithTheme(theme Theme) Option {
	return func(model *Model) { model.styles = newStyles(theme) }
}

// WithFadeDelay overrides how long notices and log lines stay visible. Zero
// keeps them until the next one.
func WithFadeDelay(d time.Duration) Option {
	return func(model *Model) {
		model.fadeDelay = d
		model.logFadeDelay = d
	}
}

func NewModel(workflow *services.Workflow, opts ...Option) Model {
	model := Model{
		workflow:     workflow,
		ctx:          context.Background(),
		keys:         DefaultKeyMap,
		styles:       newStyles(DefaultTheme),
		fadeDelay:    noticeFadeDelay,
		logFadeDelay: logFadeDelay,
		width:        100,
		height:       40,
		username:     newInput("usuário", false),
		password:     newInput("senha", true),
		sourceIndex:  -1,
		destIndex:    -1,
	}
	if workflow.Catalog != nil {
		model.cities = workflow.Catalog.Names()
	}
	for _, opt := range opts {
		opt(&model)
	}
	model.username.Focus()
	return model
}

func newInput(placeholder string, secret bool) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 64
	input.Width = 32
	input.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	return input
}

func (model Model) Init() tea.Cmd {
	return nil
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		if message.String() == "ctrl+c" {
			return model, tea.Quit
		}
		if !model.signedIn {
			return model.handleLoginKeys(message)
		}
		return model.handleKeys(message)

	case loginResultMsg:
		model.busy = false
		model.password.SetValue("")
		if message.err != nil {
			return model, nil
		}
		model.signedIn = true
		model.workflow.Orchestrator.Select(services.ScreenIdle)
		return model, loadAccountCmd(model.ctx, model.workflow)

	case accountMsg:
		if message.UserErr != nil {
			// Without a profile there is no usable session.
			model.toLogin()
			return model, signOutCmd(model.ctx, model.workflow)
		}
		model.user = message.User
		if message.CartErr == nil {
			model.cart = message.Cart
		}
		if message.TicketsErr == nil {
			model.tickets = message.Tickets
		}
		model.clampCursors()
		return model.checkSession(), nil

	case routeMsg:
		if !message.Applied || message.Generation < model.routeGen {
			return model.checkSession(), nil
		}
		model.routeGen = message.Generation
		model.path = message.Path
		if len(model.path) == 0 {
			model.wishlist = nil
			return model.checkSession(), nil
		}
		return model.checkSession(), resolveCmd(model.ctx, model.workflow, model.routeGen, model.path)

	case wishlistMsg:
		// Flights of a path that is no longer shown are dropped.
		if message.err == nil && message.gen == model.routeGen {
			model.wishlist = message.items
		}
		return model.checkSession(), nil

	case reservedMsg:
		return model.checkSession(), nil

	case cartMsg:
		if message.err == nil {
			model.cart = message.items
			model.clampCursors()
		}
		return model.checkSession(), nil

	case ticketsMsg:
		if message.err == nil {
			model.tickets = message.items
			model.clampCursors()
		}
		return model.checkSession(), nil

	case signedOutMsg:
		model.toLogin()
		return model, nil

	case noticeMsg:
		model.notice = ports.Notice(message)
		model.noticeSeq++
		if model.notice.Kind == ports.KindAuth && model.signedIn {
			model.toLogin()
		}
		return model, fadeCmd(model.fadeDelay, noticeFadeMsg{seq: model.noticeSeq})

	case noticeFadeMsg:
		if message.seq == model.noticeSeq {
			model.notice = ports.Notice{}
		}
		return model, nil

	case logRecordMsg:
		model.logLine = message.Summary
		model.logLevel = message.Level
		model.logSeq++
		return model, fadeCmd(model.logFadeDelay, logFadeMsg{seq: model.logSeq})

	case logFadeMsg:
		if message.seq == model.logSeq {
			model.logLine = ""
		}
		return model, nil
	}

	return model, nil
}

func (model Model) handleLoginKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyEsc:
		return model, tea.Quit
	case key.Matches(message, model.keys.Submit):
		if model.busy {
			return model, nil
		}
		model.busy = true
		return model, loginCmd(model.ctx, model.workflow, model.username.Value(), model.password.Value())
	case key.Matches(message, model.keys.NextField):
		model.setFocus(1 - model.focus)
		return model, nil
	}

	var cmd tea.Cmd
	if model.focus == fieldUsername {
		model.username, cmd = model.username.Update(message)
	} else {
		model.password, cmd = model.password.Update(message)
	}
	return model, cmd
}

func (model *Model) setFocus(field int) {
	model.focus = field
	if field == fieldUsername {
		model.password.Blur()
		model.username.Focus()
	} else {
		model.username.Blur()
		model.password.Focus()
	}
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Logout):
		return model, signOutCmd(model.ctx, model.workflow)
	case key.Matches(message, model.keys.ScreenMap):
		return model.selectScreen(services.ScreenMap)
	case key.Matches(message, model.keys.ScreenTickets):
		return model.selectScreen(services.ScreenTickets)
	case key.Matches(message, model.keys.ScreenCart):
		return model.selectScreen(services.ScreenCart)
	case key.Matches(message, model.keys.ScreenIdle):
		return model.selectScreen(services.ScreenIdle)
	case key.Matches(message, model.keys.CycleScreen):
		return model.selectScreen(nextScreen(model.workflow.Orchestrator.Screen()))
	}

	switch model.workflow.Orchestrator.Screen() {
	case services.ScreenMap:
		return model.handleMapKeys(message)
	case services.ScreenCart:
		return model.handleCartKeys(message)
	case services.ScreenTickets:
		return model.handleTicketKeys(message)
	}
	return model, nil
}

func (model Model) selectScreen(screen services.Screen) (tea.Model, tea.Cmd) {
	model.workflow.Orchestrator.Select(screen)
	switch screen {
	case services.ScreenCart:
		return model, cartCmd(model.ctx, model.workflow, false)
	case services.ScreenTickets:
		return model, ticketsCmd(model.ctx, model.workflow, false)
	}
	return model, nil
}

func nextScreen(current services.Screen) services.Screen {
	for i, s := range screenOrder {
		if s == current {
			return screenOrder[(i+1)%len(screenOrder)]
		}
	}
	return services.ScreenIdle
}

func (model Model) handleMapKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(model.cities) == 0 {
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.SourceNext):
		model.sourceIndex = step(model.sourceIndex, 1, len(model.cities))
		return model, routeCmd(model.ctx, model.workflow, true, model.cities[model.sourceIndex])
	case key.Matches(message, model.keys.SourcePrev):
		model.sourceIndex = step(model.sourceIndex, -1, len(model.cities))
		return model, routeCmd(model.ctx, model.workflow, true, model.cities[model.sourceIndex])
	case key.Matches(message, model.keys.DestNext):
		model.destIndex = step(model.destIndex, 1, len(model.cities))
		return model, routeCmd(model.ctx, model.workflow, false, model.cities[model.destIndex])
	case key.Matches(message, model.keys.DestPrev):
		model.destIndex = step(model.destIndex, -1, len(model.cities))
		return model, routeCmd(model.ctx, model.workflow, false, model.cities[model.destIndex])
	case key.Matches(message, model.keys.Reserve):
		return model, reserveCmd(model.ctx, model.workflow, model.path)
	}
	return model, nil
}

// step moves index by delta, wrapping. An unset index (-1) moves to the
// first or last entry.
func step(index, delta, n int) int {
	if index < 0 {
		if delta > 0 {
			return 0
		}
		return n - 1
	}
	return ((index+delta)%n + n) % n
}

func (model Model) handleCartKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.cartCursor = max(model.cartCursor-1, 0)
	case key.Matches(message, model.keys.Down):
		model.cartCursor = min(model.cartCursor+1, max(len(model.cart)-1, 0))
	case key.Matches(message, model.keys.Refresh):
		return model, cartCmd(model.ctx, model.workflow, true)
	case key.Matches(message, model.keys.Purchase):
		if r, ok := model.selectedReservation(); ok {
			return model, purchaseCmd(model.ctx, model.workflow, r.Id)
		}
	case key.Matches(message, model.keys.Delete):
		if r, ok := model.selectedReservation(); ok {
			return model, deleteReservationCmd(model.ctx, model.workflow, r.Id)
		}
	}
	return model, nil
}

func (model Model) handleTicketKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.ticketCursor = max(model.ticketCursor-1, 0)
	case key.Matches(message, model.keys.Down):
		model.ticketCursor = min(model.ticketCursor+1, max(len(model.tickets)-1, 0))
	case key.Matches(message, model.keys.Refresh):
		return model, ticketsCmd(model.ctx, model.workflow, true)
	case key.Matches(message, model.keys.Delete):
		if model.ticketCursor < len(model.tickets) {
			return model, deleteTicketCmd(model.ctx, model.workflow, model.tickets[model.ticketCursor].Id)
		}
	}
	return model, nil
}

func (model Model) selectedReservation() (domain.Reservation, bool) {
	if model.cartCursor < len(model.cart) {
		return model.cart[model.cartCursor], true
	}
	return domain.Reservation{}, false
}

func (model *Model) clampCursors() {
	model.cartCursor = min(model.cartCursor, max(len(model.cart)-1, 0))
	model.ticketCursor = min(model.ticketCursor, max(len(model.tickets)-1, 0))
}

// checkSession returns to the login form once the session has been cleared,
// e.g. by the gateway's auth failure handler.
func (model Model) checkSession() Model {
	if model.signedIn && !model.workflow.Sessions.Authenticated() {
		model.toLogin()
	}
	return model
}

func (model *Model) toLogin() {
	model.signedIn = false
	model.busy = false
	model.user = domain.User{}
	model.path = nil
	model.wishlist = nil
	model.cart = nil
	model.tickets = nil
	model.cartCursor = 0
	model.ticketCursor = 0
	model.sourceIndex = -1
	model.destIndex = -1
	model.password.SetValue("")
	model.setFocus(fieldUsername)
}
