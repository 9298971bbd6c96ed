package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/mapview"
	"vendepass-client/internal/ports"
	"vendepass-client/internal/services"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var screenTitles = map[services.Screen]string{
	services.ScreenIdle:    "Início",
	services.ScreenMap:     "Mapa",
	services.ScreenTickets: "Passagens",
	services.ScreenCart:    "Carrinho",
}

func (model Model) View() string {
	if !model.signedIn {
		return model.loginView()
	}

	screen := model.workflow.Orchestrator.Screen()

	var body string
	switch screen {
	case services.ScreenMap:
		body = model.mapView()
	case services.ScreenCart:
		body = model.cartView()
	case services.ScreenTickets:
		body = model.ticketsView()
	default:
		body = model.idleView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		model.headerView(screen),
		"",
		body,
		"",
		model.statusView(screen),
	)
}

func (model Model) loginView() string {
	var b strings.Builder
	b.WriteString(model.styles.title.Render("VendePass"))
	b.WriteString("\n\n")
	b.WriteString(model.styles.label.Render("Usuário") + "\n")
	b.WriteString(model.username.View() + "\n\n")
	b.WriteString(model.styles.label.Render("Senha") + "\n")
	b.WriteString(model.password.View() + "\n\n")
	if model.busy {
		b.WriteString(model.styles.faint.Render("Entrando..."))
	} else {
		b.WriteString(model.styles.faint.Render("enter entrar · tab trocar campo · esc sair"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		model.styles.loginBox.Render(b.String()),
		model.noticeView(),
	)
}

func (model Model) headerView(current services.Screen) string {
	tabs := make([]string, 0, len(screenOrder))
	for _, s := range screenOrder {
		title := screenTitles[s]
		if s == current {
			tabs = append(tabs, model.styles.activeTab.Render(title))
		} else {
			tabs = append(tabs, model.styles.tab.Render(title))
		}
	}

	greeting := ""
	if model.user.Name != "" {
		greeting = model.styles.faint.Render("  Olá, " + model.user.Name)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		model.styles.title.Render("VendePass  "),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		greeting,
	)
}

func (model Model) idleView() string {
	name := model.user.Name
	if name == "" {
		name = model.user.Username
	}
	return model.styles.body.Render(fmt.Sprintf(
		"Bem-vindo(a), %s.\n\n%d reserva(s) no carrinho, %d passagem(ns) compradas.\nUse 1, 2 e 3 para navegar.",
		name, len(model.cart), len(model.tickets),
	))
}

func (model Model) mapView() string {
	var b strings.Builder

	source, dest := "-", "-"
	if model.sourceIndex >= 0 && model.sourceIndex < len(model.cities) {
		source = model.cityLabel(model.cities[model.sourceIndex])
	}
	if model.destIndex >= 0 && model.destIndex < len(model.cities) {
		dest = model.cityLabel(model.cities[model.destIndex])
	}
	b.WriteString(model.styles.label.Render("Origem: ") + model.styles.source.Render(source))
	b.WriteString("    ")
	b.WriteString(model.styles.label.Render("Destino: ") + model.styles.dest.Render(dest))
	b.WriteString("\n\n")

	opt := mapview.Options{
		Width:  max(model.width-4, 40),
		Height: max(model.height-16-len(model.wishlist), 10),
	}
	var cities []domain.City
	if catalog := model.workflow.Catalog; catalog != nil {
		cities = catalog.Cities()
		center := catalog.Center()
		opt.Center = &center
	}
	b.WriteString(mapview.Render(cities, model.path, opt))

	b.WriteString("\n")
	b.WriteString(model.wishlistView())
	return b.String()
}

// cityLabel appends the state, e.g. "São Paulo (SP)".
func (model Model) cityLabel(name string) string {
	if model.workflow.Catalog == nil {
		return name
	}
	if city, ok := model.workflow.Catalog.Lookup(name); ok && city.State != "" {
		return name + " (" + city.State + ")"
	}
	return name
}

func (model Model) wishlistView() string {
	if len(model.wishlist) == 0 {
		return model.styles.faint.Render("Nenhum voo para esta rota.")
	}

	lines := []string{model.styles.label.Render("Voos da rota")}
	for _, item := range model.wishlist {
		seats := fmt.Sprintf("%d assento(s)", item.Flight.Seats)
		if item.Full() {
			seats = model.styles.full.Render("lotado")
		}
		lines = append(lines, fmt.Sprintf("  %s → %s  %s", item.Flight.Src, item.Flight.Dest, seats))
	}
	lines = append(lines, model.styles.faint.Render("r reserva a rota inteira"))
	return strings.Join(lines, "\n")
}

func (model Model) cartView() string {
	if len(model.cart) == 0 {
		return model.styles.faint.Render("Carrinho vazio.")
	}

	lines := []string{model.styles.label.Render("Reservas pendentes")}
	for i, r := range model.cart {
		lines = append(lines, model.row(i == model.cartCursor, fmt.Sprintf("%s → %s  (%s)", r.Src.Name, r.Dest.Name, r.Id)))
	}
	return strings.Join(lines, "\n")
}

func (model Model) ticketsView() string {
	if len(model.tickets) == 0 {
		return model.styles.faint.Render("Nenhuma passagem comprada.")
	}

	lines := []string{model.styles.label.Render("Passagens")}
	for i, t := range model.tickets {
		lines = append(lines, model.row(i == model.ticketCursor, fmt.Sprintf("%s → %s  (%s)", t.Src.Name, t.Dest.Name, t.Id)))
	}
	return strings.Join(lines, "\n")
}

func (model Model) row(selected bool, text string) string {
	if selected {
		return model.styles.selected.Render("> " + text)
	}
	return "  " + text
}

func (model Model) statusView(screen services.Screen) string {
	lines := []string{}
	if n := model.noticeView(); n != "" {
		lines = append(lines, n)
	} else {
		lines = append(lines, model.styles.faint.Render(model.helpLine(screen)))
	}
	if model.logLine != "" {
		style := model.styles.noticeWarn
		if model.logLevel >= slog.LevelError {
			style = model.styles.noticeError
		}
		lines = append(lines, style.Render(model.logLine))
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, model.width, "…")
	}
	return strings.Join(lines, "\n")
}

func (model Model) noticeView() string {
	if model.notice.Message == "" {
		return ""
	}
	switch model.notice.Kind {
	case ports.KindInfo:
		return model.styles.noticeInfo.Render(model.notice.Message)
	case ports.KindValidation:
		return model.styles.noticeWarn.Render(model.notice.Message)
	default:
		return model.styles.noticeError.Render(model.notice.Message)
	}
}

func (model Model) helpLine(screen services.Screen) string {
	bindings := []key.Binding{model.keys.ScreenMap, model.keys.ScreenTickets, model.keys.ScreenCart}
	switch screen {
	case services.ScreenMap:
		bindings = append(bindings, model.keys.SourceNext, model.keys.DestNext, model.keys.Reserve)
	case services.ScreenCart:
		bindings = append(bindings, model.keys.Up, model.keys.Down, model.keys.Purchase, model.keys.Delete, model.keys.Refresh)
	case services.ScreenTickets:
		bindings = append(bindings, model.keys.Up, model.keys.Down, model.keys.Delete, model.keys.Refresh)
	}
	bindings = append(bindings, model.keys.Logout, model.keys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
