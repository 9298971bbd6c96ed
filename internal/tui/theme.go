package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette of the TUI.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color

	Info    lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Route  lipgloss.Color
	Full   lipgloss.Color
	Source lipgloss.Color
	Dest   lipgloss.Color
}

var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("231"),
	HeaderForeground:   lipgloss.Color("75"),
	BorderColor:        lipgloss.Color("240"),
	Info:               lipgloss.Color("114"),
	Warning:            lipgloss.Color("220"),
	Error:              lipgloss.Color("203"),
	Route:              lipgloss.Color("214"),
	Full:               lipgloss.Color("203"),
	Source:             lipgloss.Color("114"),
	Dest:               lipgloss.Color("81"),
}

type styles struct {
	title       lipgloss.Style
	tab         lipgloss.Style
	activeTab   lipgloss.Style
	body        lipgloss.Style
	faint       lipgloss.Style
	selected    lipgloss.Style
	label       lipgloss.Style
	full        lipgloss.Style
	route       lipgloss.Style
	source      lipgloss.Style
	dest        lipgloss.Style
	noticeInfo  lipgloss.Style
	noticeWarn  lipgloss.Style
	noticeError lipgloss.Style
	loginBox    lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		tab:         lipgloss.NewStyle().Padding(0, 1).Foreground(theme.FaintText),
		activeTab:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(theme.SelectedForeground).Background(theme.SelectedBackground),
		body:        lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:       lipgloss.NewStyle().Foreground(theme.FaintText),
		selected:    lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground),
		label:       lipgloss.NewStyle().Bold(true),
		full:        lipgloss.NewStyle().Bold(true).Foreground(theme.Full),
		route:       lipgloss.NewStyle().Foreground(theme.Route),
		source:      lipgloss.NewStyle().Bold(true).Foreground(theme.Source),
		dest:        lipgloss.NewStyle().Bold(true).Foreground(theme.Dest),
		noticeInfo:  lipgloss.NewStyle().Foreground(theme.Info),
		noticeWarn:  lipgloss.NewStyle().Foreground(theme.Warning),
		noticeError: lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		loginBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor).
			Padding(1, 3),
	}
}
