// ABOUTME: Scripting host exposing the manager as rsc.io/script commands
// ABOUTME: Binds resource and unit handles to script-local names
package host

import (
	"time"

	"github.com/aerials-audio/acaudio/pkg/acaudio"
	"rsc.io/script"
)

// Clock moves playback time forward. *output.Null implements it.
type Clock interface {
	Advance(d time.Duration) []int16
}

// Host binds one manager to a script engine. Results are printed on stdout
// as true, false <message>, numbers or nil; a falsy result never fails the
// command. Only usage errors and unknown names fail.
type Host struct {
	m         *acaudio.Manager
	clock     Clock
	resources map[string]acaudio.ResourceHandle
	units     map[string]acaudio.UnitHandle
}

// New creates a host. clock drives the advance command; when nil, advance
// sleeps in real time.
func New(m *acaudio.Manager, clock Clock) *Host {
	return &Host{
		m:         m,
		clock:     clock,
		resources: make(map[string]acaudio.ResourceHandle),
		units:     make(map[string]acaudio.UnitHandle),
	}
}

// Engine returns a script engine with the default commands plus the host commands
func (h *Host) Engine() *script.Engine {
	e := script.NewEngine()
	for name, cmd := range h.Commands() {
		e.Cmds[name] = cmd
	}
	return e
}

// Commands returns the host commands by name
func (h *Host) Commands() map[string]script.Cmd {
	return map[string]script.Cmd{
		"resource":         h.cmdResource(),
		"release-resource": h.cmdReleaseResource(),
		"unit":             h.cmdUnit(),
		"release-unit":     h.cmdReleaseUnit(),
		"play":             h.cmdPlay(),
		"stop":             h.cmdStop(),
		"time":             h.cmdTime(),
		"seek":             h.cmdSeek(),
		"playing":          h.cmdPlaying(),
		"preview":          h.cmdPreview(),
		"stop-preview":     h.cmdStopPreview(),
		"activate":         h.cmdSignal(acaudio.SignalActivated),
		"deactivate":       h.cmdSignal(acaudio.SignalDeactivated),
		"advance":          h.cmdAdvance(),
		"tone":             h.cmdTone(),
		"stats":            h.cmdStats(),
	}
}
