// ABOUTME: Unit table holding playable sounds bound to resources
// ABOUTME: Play, stop, seek and playing-state queries with a cached playing flag
package acaudio

import (
	"fmt"

	"github.com/aerials-audio/acaudio/pkg/engine"
	"github.com/aerials-audio/acaudio/pkg/slot"
	"go.uber.org/zap"
)

type unit struct {
	res      ResourceHandle
	sound    *engine.Sound
	playing  bool // cached, refreshed by CheckPlaying
	paused   bool // stopped by Deactivated, cleared by Activated
	loop     bool
	lengthMs int64
}

// UnitInfo describes a live unit
type UnitInfo struct {
	Handle   UnitHandle
	Resource ResourceHandle
	Playing  bool // cached flag
	Loop     bool
	TimeMs   int64
	LengthMs int64
}

// CreateUnit creates a stopped unit at the start of resource rh. The length
// is computed from the resource frame count at the player engine rate.
func (m *Manager) CreateUnit(rh ResourceHandle) (UnitHandle, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return 0, 0, err
	}
	r, ok := m.resources.Get(slot.Key(rh))
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownResource, rh)
	}

	snd, err := m.player.NewSound(r.ds)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrUnitInit, err)
	}

	u := &unit{
		res:      rh,
		sound:    snd,
		lengthMs: m.player.FramesToMillis(snd.LengthFrames()),
	}
	r.refs++
	h := UnitHandle(m.units.Insert(u))

	m.logger.Debug("unit created",
		zap.Stringer("unit", h), zap.Stringer("resource", rh), zap.Int64("length_ms", u.lengthMs))
	return h, u.lengthMs, nil
}

// ReleaseUnit stops the unit if needed, closes it and drops its resource reference
func (m *Manager) ReleaseUnit(h UnitHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.lookupUnit(h)
	if err != nil {
		return err
	}

	if u.playing || u.sound.IsPlaying() {
		u.sound.Stop()
	}
	if err := u.sound.Close(); err != nil {
		m.logger.Warn("sound close failed", zap.Stringer("unit", h), zap.Error(err))
	}
	if r, ok := m.resources.Get(slot.Key(u.res)); ok {
		r.refs--
	}
	m.units.Remove(slot.Key(h))

	m.logger.Debug("unit released", zap.Stringer("unit", h))
	return nil
}

// PlayUnit sets the loop flag and starts the unit. It returns the position
// reported after the start.
func (m *Manager) PlayUnit(h UnitHandle, loop bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.lookupUnit(h)
	if err != nil {
		return 0, err
	}

	u.paused = false
	u.loop = loop
	u.sound.SetLooping(loop)
	if err := u.sound.Start(); err != nil {
		u.playing = false
		m.logger.Warn("unit start failed", zap.Stringer("unit", h), zap.Error(err))
		return 0, fmt.Errorf("%w: %w", ErrStartFailed, err)
	}
	u.playing = true
	return m.unitTime(u), nil
}

// StopUnit stops the unit, optionally rewinding to frame 0
func (m *Manager) StopUnit(h UnitHandle, rewind bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.lookupUnit(h)
	if err != nil {
		return err
	}

	u.playing = false
	u.paused = false
	if err := u.sound.Stop(); err != nil {
		return fmt.Errorf("failed to stop %s: %w", h, err)
	}
	if rewind {
		if err := u.sound.SeekToFrame(0); err != nil {
			return fmt.Errorf("failed to rewind %s: %w", h, err)
		}
	}
	return nil
}

// Time returns the playback position in milliseconds
func (m *Manager) Time(h UnitHandle) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.lookupUnit(h)
	if err != nil {
		return 0, err
	}
	return m.unitTime(u), nil
}

// SetTime seeks to ms clamped to [0, length]. A unit the engine reports as
// playing is restarted after the seek; a stopped unit stays stopped. A
// non-looping unit sent to its end is left stopped there instead of
// restarting from frame 0. It returns the position after the seek.
func (m *Manager) SetTime(h UnitHandle, ms int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.lookupUnit(h)
	if err != nil {
		return 0, err
	}

	if ms < 0 {
		ms = 0
	}
	if ms > u.lengthMs {
		ms = u.lengthMs
	}
	frame := m.player.MillisToFrames(ms)
	atEnd := u.lengthMs > 0 && ms == u.lengthMs
	if n := u.sound.LengthFrames(); atEnd && n >= 0 {
		// lengthMs is truncated; land on the exact end
		frame = n
	}

	wasPlaying := u.sound.IsPlaying()
	if err := u.sound.Stop(); err != nil {
		return 0, fmt.Errorf("failed to stop %s: %w", h, err)
	}
	if err := u.sound.SeekToFrame(frame); err != nil {
		return 0, fmt.Errorf("failed to seek %s: %w", h, err)
	}

	if atEnd && !u.loop && (wasPlaying || u.paused) {
		// Nothing left to play; Activated must not restart it either
		u.playing = false
		u.paused = false
		return m.unitTime(u), nil
	}
	if wasPlaying {
		if err := u.sound.Start(); err != nil {
			u.playing = false
			m.logger.Warn("unit restart after seek failed", zap.Stringer("unit", h), zap.Error(err))
			return 0, fmt.Errorf("%w: %w", ErrStartFailed, err)
		}
		u.playing = true
	}
	return m.unitTime(u), nil
}

// CheckPlaying re-queries the engine, refreshes the cached flag and returns it
func (m *Manager) CheckPlaying(h UnitHandle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.lookupUnit(h)
	if err != nil {
		return false, err
	}
	u.playing = u.sound.IsPlaying()
	return u.playing, nil
}

// Unit describes a live unit without refreshing its cached flag
func (m *Manager) Unit(h UnitHandle) (UnitInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.lookupUnit(h)
	if err != nil {
		return UnitInfo{}, err
	}
	return m.unitInfo(h, u), nil
}

// Units lists live units in table order
func (m *Manager) Units() []UnitInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	var infos []UnitInfo
	m.units.Each(func(k slot.Key, u *unit) bool {
		infos = append(infos, m.unitInfo(UnitHandle(k), u))
		return true
	})
	return infos
}

func (m *Manager) unitInfo(h UnitHandle, u *unit) UnitInfo {
	return UnitInfo{
		Handle:   h,
		Resource: u.res,
		Playing:  u.playing,
		Loop:     u.loop,
		TimeMs:   m.unitTime(u),
		LengthMs: u.lengthMs,
	}
}

func (m *Manager) lookupUnit(h UnitHandle) (*unit, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	u, ok := m.units.Get(slot.Key(h))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, h)
	}
	return u, nil
}

func (m *Manager) unitTime(u *unit) int64 {
	return m.player.FramesToMillis(u.sound.CursorFrames())
}
