// ABOUTME: Audio output interface definitions
// ABOUTME: Device and Voice are shared by every playback backend
package output

import (
	"errors"
	"io"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name
var ErrUnknownBackend = errors.New("unknown output backend")

// Voice plays one PCM stream on a Device. *oto.Player satisfies it.
type Voice interface {
	// Play starts or resumes pulling from the source
	Play()

	// Pause stops pulling without moving the source
	Pause()

	// IsPlaying reports whether the voice is pulling. It turns false on its own
	// once the source reaches EOF and the buffered audio has drained.
	IsPlaying() bool

	// Seek repositions the source and drops buffered audio
	Seek(offset int64, whence int) (int64, error)

	// BufferedSize returns the bytes read from the source but not yet heard
	BufferedSize() int

	// Err returns the error that stopped the voice, if any
	Err() error

	// Close releases the voice
	Close() error
}

// Device is an opened playback device
type Device interface {
	// SampleRate returns the device rate in Hz
	SampleRate() int

	// Channels returns the device channel count
	Channels() int

	// NewVoice creates a paused voice reading 16-bit LE interleaved PCM from src
	NewVoice(src io.ReadSeeker) Voice

	// Close releases the device
	Close() error
}
