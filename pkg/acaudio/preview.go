// ABOUTME: Preview slot playing one streamed buffer on the preview engine
// ABOUTME: A new preview replaces the previous one; failed starts roll back fully
package acaudio

import (
	"fmt"

	"github.com/aerials-audio/acaudio/pkg/engine"
	"go.uber.org/zap"
)

type preview struct {
	ds      *engine.DataSource
	sound   *engine.Sound
	playing bool
	paused  bool
	loop    bool
}

// PlayPreview stops and frees any current preview, then streams data on the
// preview engine. On failure nothing of the new preview is retained.
func (m *Manager) PlayPreview(data []byte, loop bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return err
	}
	m.stopPreviewLocked()

	if len(data) == 0 {
		return ErrEmptyBuffer
	}
	owned := make([]byte, len(data))
	copy(owned, data)

	ds, err := m.previewEng.NewDataSource(owned, engine.DecodeStreamed)
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}

	snd, err := m.previewEng.NewSound(ds)
	if err != nil {
		ds.Close()
		return fmt.Errorf("%w: %w", ErrUnitInit, err)
	}

	snd.SetLooping(loop)
	if err := snd.Start(); err != nil {
		snd.Close()
		ds.Close()
		return fmt.Errorf("%w: %w", ErrStartFailed, err)
	}

	m.preview = &preview{ds: ds, sound: snd, playing: true, loop: loop}
	m.logger.Debug("preview started", zap.String("codec", ds.Codec()), zap.Bool("loop", loop))
	return nil
}

// StopPreview stops and frees the current preview. It does nothing when no
// preview is active.
func (m *Manager) StopPreview() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return err
	}
	m.stopPreviewLocked()
	return nil
}

// PreviewActive reports whether a preview is loaded
func (m *Manager) PreviewActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.preview != nil
}

// PreviewTime returns the preview position in milliseconds. ok is false when
// no preview is loaded.
func (m *Manager) PreviewTime() (ms int64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.preview == nil {
		return 0, false
	}
	return m.previewEng.FramesToMillis(m.preview.sound.CursorFrames()), true
}

// CheckPreview re-queries the engine and refreshes the preview playing flag
func (m *Manager) CheckPreview() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.preview == nil {
		return false
	}
	m.preview.playing = m.preview.sound.IsPlaying()
	return m.preview.playing
}

// stopPreviewLocked tears down the preview, logging and swallowing failures
func (m *Manager) stopPreviewLocked() {
	p := m.preview
	if p == nil {
		return
	}
	m.preview = nil

	if err := p.sound.Stop(); err != nil {
		m.logger.Warn("preview stop failed", zap.Error(err))
	}
	if err := p.sound.Close(); err != nil {
		m.logger.Warn("preview sound close failed", zap.Error(err))
	}
	if err := p.ds.Close(); err != nil {
		m.logger.Warn("preview data source close failed", zap.Error(err))
	}
	m.logger.Debug("preview stopped")
}
