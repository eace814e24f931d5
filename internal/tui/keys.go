package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Focus
	Next  key.Binding
	Prev  key.Binding
	Press key.Binding

	// Snackbars
	ShowInfo  key.Binding
	ShowError key.Binding
	Compose   key.Binding
	Dismiss   key.Binding

	// Compose mode
	Submit         key.Binding
	Cancel         key.Binding
	ToggleSeverity key.Binding

	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.ShowInfo, k.ShowError, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Press},
		{k.ShowInfo, k.ShowError, k.Compose, k.Dismiss},
		{k.Submit, k.Cancel, k.ToggleSeverity},
		{k.Help, k.Quit},
	}
}

// composeHelp is shown while a custom message is being typed.
func (k KeyMap) composeHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleSeverity, k.Cancel}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "right", "j", "l"),
			key.WithHelp("tab/↓", "next button"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "left", "k", "h"),
			key.WithHelp("shift+tab/↑", "previous button"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		ShowInfo: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "info snackbar"),
		),
		ShowError: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "error snackbar"),
		),
		Compose: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "custom message"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ToggleSeverity: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "toggle severity"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
