// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the player UI
package ui

import (
	"github.com/aerials-audio/acaudio/pkg/acaudio"
	tea "github.com/charmbracelet/bubbletea"
)

// NewModel creates a new TUI model over the given tracks
func NewModel(player Player, tracks []Track) Model {
	return Model{
		player:  player,
		keys:    DefaultKeyMap(),
		tracks:  tracks,
		loops:   make([]bool, len(tracks)),
		focused: true,
	}
}

// Run creates the TUI program. Focus reporting maps terminal focus to the
// activate and deactivate lifecycle signals.
func Run(player Player, tracks []Track) *tea.Program {
	return tea.NewProgram(NewModel(player, tracks), tea.WithAltScreen(), tea.WithReportFocus())
}

// SignalMsg delivers an external lifecycle signal to the model, which applies
// it to the player and tracks whether it is in the background
type SignalMsg struct {
	Signal acaudio.Signal
}

// SignalForwarder hands lifecycle signals to a running program so they pass
// through the model rather than reaching the player directly
type SignalForwarder struct {
	prog *tea.Program
}

// NewSignalForwarder returns a forwarder for prog
func NewSignalForwarder(prog *tea.Program) *SignalForwarder {
	return &SignalForwarder{prog: prog}
}

// Handle sends sig to the program. Errors surface in the model.
func (f *SignalForwarder) Handle(sig acaudio.Signal) error {
	f.prog.Send(SignalMsg{Signal: sig})
	return nil
}
