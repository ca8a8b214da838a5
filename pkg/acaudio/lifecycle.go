// ABOUTME: Reactions to application activate and deactivate signals
// ABOUTME: Pauses playing units on deactivate and resumes them on activate
package acaudio

import (
	"fmt"

	"github.com/aerials-audio/acaudio/pkg/engine"
	"github.com/aerials-audio/acaudio/pkg/slot"
	"go.uber.org/zap"
)

// Signal is an application lifecycle event
type Signal int

const (
	SignalActivated Signal = iota + 1
	SignalDeactivated
)

func (s Signal) String() string {
	switch s {
	case SignalActivated:
		return "activated"
	case SignalDeactivated:
		return "deactivated"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}

// Handle dispatches a lifecycle signal
func (m *Manager) Handle(sig Signal) error {
	switch sig {
	case SignalActivated:
		return m.Activated()
	case SignalDeactivated:
		return m.Deactivated()
	}
	return fmt.Errorf("unknown lifecycle signal %d", int(sig))
}

// Deactivated stops every unit and the preview whose cached flag is set,
// without rewinding. The flag stays set so Activated can resume them. A unit
// that already finished on its own has its flag cleared instead. Units paused
// by an earlier Deactivated are left alone, so repeated calls are no-ops.
func (m *Manager) Deactivated() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return err
	}

	paused := 0
	m.units.Each(func(k slot.Key, u *unit) bool {
		if m.suspend(u.sound, &u.playing, &u.paused) {
			paused++
		}
		return true
	})
	if p := m.preview; p != nil {
		if m.suspend(p.sound, &p.playing, &p.paused) {
			paused++
		}
	}

	m.logger.Debug("deactivated", zap.Int("paused", paused))
	return nil
}

// Activated starts every unit and the preview whose cached flag is set and
// which the engine reports as stopped. A failed start clears the flag.
func (m *Manager) Activated() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return err
	}

	resumed := 0
	m.units.Each(func(k slot.Key, u *unit) bool {
		if m.resume(UnitHandle(k).String(), u.sound, &u.playing, &u.paused) {
			resumed++
		}
		return true
	})
	if p := m.preview; p != nil {
		if m.resume("preview", p.sound, &p.playing, &p.paused) {
			resumed++
		}
	}

	m.logger.Debug("activated", zap.Int("resumed", resumed))
	return nil
}

// suspend stops a playing sound and marks it paused. A sound that is already
// paused keeps its flag even though the engine reports it stopped.
func (m *Manager) suspend(snd *engine.Sound, playing, paused *bool) bool {
	if *paused || !*playing {
		return false
	}
	if !snd.IsPlaying() {
		// Finished on its own while in the foreground
		*playing = false
		return false
	}
	if err := snd.Stop(); err != nil {
		m.logger.Warn("stop on deactivate failed", zap.Error(err))
		return false
	}
	*paused = true
	return true
}

func (m *Manager) resume(name string, snd *engine.Sound, playing, paused *bool) bool {
	*paused = false
	if !*playing || snd.IsPlaying() {
		return false
	}
	if err := snd.Start(); err != nil {
		*playing = false
		m.logger.Warn("resume on activate failed", zap.String("unit", name), zap.Error(err))
		return false
	}
	return true
}
