// ABOUTME: Sound playing a data source through its own voice
// ABOUTME: Start, stop, seek and position queries in engine frames
package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/aerials-audio/acaudio/pkg/audio/output"
)

// Sound is one playback instance of a data source
type Sound struct {
	engine *Engine
	ds     *DataSource
	cur    *cursor
	voice  output.Voice

	mu     sync.Mutex
	closed bool
}

// Start begins playback from the cursor. A non-looping sound sitting at its
// end restarts from frame 0. A voice that failed before may start again.
func (s *Sound) Start() error {
	if s.isClosed() {
		return ErrSoundClosed
	}

	if !s.cur.isLooping() && s.cur.atEnd() {
		if _, err := s.voice.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind failed: %w", err)
		}
	}

	s.voice.Play()
	if err := s.voice.Err(); err != nil {
		return fmt.Errorf("voice failed: %w", err)
	}
	return nil
}

// Stop pauses playback without moving the cursor
func (s *Sound) Stop() error {
	if s.isClosed() {
		return ErrSoundClosed
	}
	s.voice.Pause()
	return nil
}

// IsPlaying queries the voice. It is false once a non-looping sound drains.
func (s *Sound) IsPlaying() bool {
	if s.isClosed() {
		return false
	}
	return s.voice.IsPlaying()
}

// SetLooping sets whether playback wraps to frame 0 at the end
func (s *Sound) SetLooping(looping bool) {
	s.cur.setLooping(looping)
}

// Looping reports the loop flag
func (s *Sound) Looping() bool {
	return s.cur.isLooping()
}

// SeekToFrame moves the cursor to frame
func (s *Sound) SeekToFrame(frame int64) error {
	if s.isClosed() {
		return ErrSoundClosed
	}
	if frame < 0 {
		frame = 0
	}
	if _, err := s.voice.Seek(frame*s.engine.frameBytes(), io.SeekStart); err != nil {
		return fmt.Errorf("seek to frame %d failed: %w", frame, err)
	}
	return nil
}

// CursorFrames returns the audible position in engine frames
func (s *Sound) CursorFrames() int64 {
	frameBytes := s.engine.frameBytes()
	pos := s.cur.position() - int64(s.voice.BufferedSize())
	length := s.ds.Frames()
	looping := s.cur.isLooping()

	if pos < 0 {
		// Buffered audio from before a wrap
		if looping && length > 0 {
			pos += length * frameBytes
		}
		if pos < 0 {
			pos = 0
		}
	}

	frames := pos / frameBytes
	if looping && length > 0 {
		frames %= length
	}
	return frames
}

// LengthFrames returns the data source length in engine frames, or -1
func (s *Sound) LengthFrames() int64 {
	return s.ds.Frames()
}

// DataSource returns the source this sound plays
func (s *Sound) DataSource() *DataSource {
	return s.ds
}

// Close stops and releases the voice
func (s *Sound) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.voice.Pause()
	err := s.voice.Close()
	s.engine.release(&s.engine.sounds)
	if err != nil {
		return fmt.Errorf("voice close failed: %w", err)
	}
	return nil
}

func (s *Sound) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
