package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the booking TUI.
type KeyMap struct {
	// Login form.
	NextField key.Binding
	Submit    key.Binding

	// Screens.
	ScreenMap     key.Binding
	ScreenTickets key.Binding
	ScreenCart    key.Binding
	ScreenIdle    key.Binding
	CycleScreen   key.Binding

	// Map screen.
	SourceNext key.Binding
	SourcePrev key.Binding
	DestNext   key.Binding
	DestPrev   key.Binding
	Reserve    key.Binding

	// Cart and ticket lists.
	Up       key.Binding
	Down     key.Binding
	Purchase key.Binding
	Delete   key.Binding
	Refresh  key.Binding

	Logout key.Binding
	Quit   key.Binding
}

var DefaultKeyMap = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab", "shift+tab", "up", "down"),
		key.WithHelp("tab", "next field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "entrar"),
	),
	ScreenMap: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "mapa"),
	),
	ScreenTickets: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "passagens"),
	),
	ScreenCart: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "carrinho"),
	),
	ScreenIdle: key.NewBinding(
		key.WithKeys("0", "esc"),
		key.WithHelp("0", "início"),
	),
	CycleScreen: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "próxima aba"),
	),
	SourceNext: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s/S", "origem"),
	),
	SourcePrev: key.NewBinding(
		key.WithKeys("S"),
	),
	DestNext: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d/D", "destino"),
	),
	DestPrev: key.NewBinding(
		key.WithKeys("D"),
	),
	Reserve: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reservar rota"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Purchase: key.NewBinding(
		key.WithKeys("enter", "b"),
		key.WithHelp("enter", "comprar"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remover"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "atualizar"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "sair da conta"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
