// ABOUTME: Engine bound to one output device
// ABOUTME: Creates data sources and sounds in the device format
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aerials-audio/acaudio/pkg/audio"
	"github.com/aerials-audio/acaudio/pkg/audio/output"
	"go.uber.org/zap"
)

// DefaultStreamChunkFrames is the decode granularity of streamed sources
const DefaultStreamChunkFrames = 4096

var (
	ErrEngineClosed = errors.New("engine closed")
	ErrSoundClosed  = errors.New("sound closed")
	ErrSourceClosed = errors.New("data source closed")
)

// DecodeMode selects when a data source decodes its buffer
type DecodeMode int

const (
	// DecodeEager decodes the whole buffer when the source is created
	DecodeEager DecodeMode = iota
	// DecodeStreamed decodes incrementally as playback reads. Decoded PCM
	// is kept so seeks and loop wraps never re-decode; a fully played source
	// holds as much PCM as an eager one, minus the encoded copy released at
	// the end of decoding.
	DecodeStreamed
)

func (m DecodeMode) String() string {
	switch m {
	case DecodeEager:
		return "eager"
	case DecodeStreamed:
		return "streamed"
	default:
		return fmt.Sprintf("DecodeMode(%d)", int(m))
	}
}

// Config holds engine configuration
type Config struct {
	Name              string
	StreamChunkFrames int
	Logger            *zap.Logger
}

// Engine creates sources and sounds on a shared device
type Engine struct {
	name        string
	dev         output.Device
	chunkFrames int
	logger      *zap.Logger

	mu      sync.Mutex
	closed  bool
	sources int
	sounds  int
}

// New creates an engine on dev. The engine does not own the device.
func New(dev output.Device, cfg Config) (*Engine, error) {
	if dev == nil {
		return nil, errors.New("engine requires an output device")
	}
	if cfg.StreamChunkFrames <= 0 {
		cfg.StreamChunkFrames = DefaultStreamChunkFrames
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Name == "" {
		cfg.Name = "engine"
	}

	e := &Engine{
		name:        cfg.Name,
		dev:         dev,
		chunkFrames: cfg.StreamChunkFrames,
		logger:      cfg.Logger.With(zap.String("engine", cfg.Name)),
	}
	e.logger.Debug("engine initialized",
		zap.Int("rate", dev.SampleRate()), zap.Int("channels", dev.Channels()))
	return e, nil
}

// Name returns the engine name used in logs
func (e *Engine) Name() string { return e.name }

// SampleRate returns the rate every source is converted to
func (e *Engine) SampleRate() int { return e.dev.SampleRate() }

// Channels returns the channel count every source is converted to
func (e *Engine) Channels() int { return e.dev.Channels() }

func (e *Engine) frameBytes() int64 {
	return int64(e.Channels() * audio.BytesPerSample)
}

// FramesToMillis converts engine frames to milliseconds
func (e *Engine) FramesToMillis(frames int64) int64 {
	return audio.FramesToMillis(frames, e.SampleRate())
}

// MillisToFrames converts milliseconds to engine frames
func (e *Engine) MillisToFrames(ms int64) int64 {
	return audio.MillisToFrames(ms, e.SampleRate())
}

// NewDataSource decodes data in the given mode. data is retained by the source
// until Close and must not be modified by the caller.
func (e *Engine) NewDataSource(data []byte, mode DecodeMode) (*DataSource, error) {
	if err := e.acquire(&e.sources); err != nil {
		return nil, err
	}

	ds, err := newDataSource(e, data, mode)
	if err != nil {
		e.release(&e.sources)
		return nil, err
	}

	e.logger.Debug("data source created",
		zap.String("codec", ds.Codec()), zap.Stringer("mode", mode), zap.Int64("frames", ds.Frames()))
	return ds, nil
}

// NewSound creates a stopped sound at frame 0 of ds
func (e *Engine) NewSound(ds *DataSource) (*Sound, error) {
	if ds == nil || ds.engine != e {
		return nil, errors.New("data source does not belong to this engine")
	}
	if ds.isClosed() {
		return nil, ErrSourceClosed
	}
	if err := e.acquire(&e.sounds); err != nil {
		return nil, err
	}

	cur := &cursor{ds: ds}
	return &Sound{
		engine: e,
		ds:     ds,
		cur:    cur,
		voice:  e.dev.NewVoice(cur),
	}, nil
}

// Stats returns the live source and sound counts
func (e *Engine) Stats() (sources, sounds int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sources, e.sounds
}

// Close refuses further creation. Sources and sounds still live are reported.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.sources > 0 || e.sounds > 0 {
		e.logger.Warn("engine closed with live objects",
			zap.Int("sources", e.sources), zap.Int("sounds", e.sounds))
	}
	e.logger.Debug("engine closed")
	return nil
}

func (e *Engine) acquire(counter *int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	*counter++
	return nil
}

func (e *Engine) release(counter *int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	*counter--
}
