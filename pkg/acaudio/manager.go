// ABOUTME: Manager owning the output device, both engines and every table
// ABOUTME: Applies configuration defaults and tears everything down in order
package acaudio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aerials-audio/acaudio/pkg/audio/output"
	"github.com/aerials-audio/acaudio/pkg/engine"
	"github.com/aerials-audio/acaudio/pkg/slot"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds manager configuration
type Config struct {
	// Backend names the output backend (default: "oto")
	Backend string

	// SampleRate is the device rate every resource is decoded to (default: 48000)
	SampleRate int

	// Channels is the device channel count (default: 2)
	Channels int

	// StreamChunkFrames is the decode granularity of previews (default: 4096)
	StreamChunkFrames int

	// Logger receives structured logs (default: no-op)
	Logger *zap.Logger

	// Device, when set, is used instead of opening Backend. The manager
	// closes it on Close.
	Device output.Device
}

// Stats summarizes table occupancy
type Stats struct {
	Resources     int
	Units         int
	PlayingUnits  int // by cached flag
	PreviewActive bool
}

// Manager owns the player and preview engines and their tables. All methods
// are safe for concurrent use; one lock serializes them.
type Manager struct {
	config  Config
	logger  *zap.Logger
	session string

	mu         sync.Mutex
	closed     bool
	dev        output.Device
	player     *engine.Engine
	previewEng *engine.Engine
	resources  slot.Arena[*resource]
	units      slot.Arena[*unit]
	preview    *preview
}

// New opens the output device and initializes both engines. Any failure
// leaves nothing open.
func New(config Config) (*Manager, error) {
	// Set defaults
	if config.Backend == "" {
		config.Backend = output.BackendOto
	}
	if config.SampleRate == 0 {
		config.SampleRate = 48000
	}
	if config.Channels == 0 {
		config.Channels = 2
	}
	if config.StreamChunkFrames == 0 {
		config.StreamChunkFrames = engine.DefaultStreamChunkFrames
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	session := uuid.New().String()
	logger := config.Logger.With(zap.String("session", session))

	dev := config.Device
	if dev == nil {
		var err error
		dev, err = output.Open(config.Backend, config.SampleRate, config.Channels, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open audio output: %w", err)
		}
	}

	player, err := engine.New(dev, engine.Config{
		Name:              "player",
		StreamChunkFrames: config.StreamChunkFrames,
		Logger:            logger,
	})
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("failed to initialize player engine: %w", err)
	}

	previewEng, err := engine.New(dev, engine.Config{
		Name:              "preview",
		StreamChunkFrames: config.StreamChunkFrames,
		Logger:            logger,
	})
	if err != nil {
		player.Close()
		dev.Close()
		return nil, fmt.Errorf("failed to initialize preview engine: %w", err)
	}

	logger.Info("audio manager initialized",
		zap.String("backend", config.Backend),
		zap.Int("rate", dev.SampleRate()),
		zap.Int("channels", dev.Channels()))

	return &Manager{
		config:     config,
		logger:     logger,
		session:    session,
		dev:        dev,
		player:     player,
		previewEng: previewEng,
	}, nil
}

// Session returns the session ID attached to every log entry
func (m *Manager) Session() string {
	return m.session
}

// SampleRate returns the player engine rate used for millisecond conversion
func (m *Manager) SampleRate() int {
	return m.player.SampleRate()
}

// Stats returns table occupancy
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Resources:     m.resources.Len(),
		Units:         m.units.Len(),
		PreviewActive: m.preview != nil,
	}
	m.units.Each(func(_ slot.Key, u *unit) bool {
		if u.playing {
			s.PlayingUnits++
		}
		return true
	})
	return s
}

// Close tears down the preview, then units, then resources, then both
// engines, then the device. It is idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	var errs []error
	m.stopPreviewLocked()

	for _, k := range m.units.Keys() {
		u, _ := m.units.Remove(k)
		u.sound.Stop()
		if err := u.sound.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", UnitHandle(k), err))
		}
	}
	for _, k := range m.resources.Keys() {
		r, _ := m.resources.Remove(k)
		if err := r.ds.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", ResourceHandle(k), err))
		}
	}

	if err := m.player.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing player engine: %w", err))
	}
	if err := m.previewEng.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing preview engine: %w", err))
	}
	if err := m.dev.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing audio output: %w", err))
	}

	m.logger.Info("audio manager closed")
	return errors.Join(errs...)
}

func (m *Manager) checkOpen() error {
	if m.closed {
		return ErrClosed
	}
	return nil
}
