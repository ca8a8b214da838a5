// ABOUTME: Key bindings for the player TUI
// ABOUTME: Uses bubbles/key so help text and matching share one definition
package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the player
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Play        key.Binding
	Loop        key.Binding
	Rewind      key.Binding
	Forward     key.Binding
	Back        key.Binding
	Preview     key.Binding
	StopPreview key.Binding
	Debug       key.Binding
	Suspend     key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "play/stop"),
		),
		Loop: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "loop"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rewind"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "+5s"),
		),
		Back: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "-5s"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		StopPreview: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop preview"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "debug"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "suspend"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Play, k.Loop, k.Rewind, k.Back, k.Forward, k.Preview, k.StopPreview, k.Debug, k.Quit}
}
