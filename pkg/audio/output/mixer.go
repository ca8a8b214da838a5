// ABOUTME: Software mixer that sums voices into one int16 stream
// ABOUTME: Drives the callback backends (malgo, portaudio) and the null device
package output

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/aerials-audio/acaudio/pkg/audio"
)

// Mixer implements Device voices on top of a pull callback. Render is called
// by the backend with the buffer it must fill.
type Mixer struct {
	sampleRate int
	channels   int

	mu      sync.Mutex
	voices  []*mixerVoice
	closed  bool
	playErr error
	scratch []byte
	acc     []int32
}

// NewMixer creates a mixer for the given output format
func NewMixer(sampleRate, channels int) *Mixer {
	return &Mixer{sampleRate: sampleRate, channels: channels}
}

func (m *Mixer) SampleRate() int { return m.sampleRate }
func (m *Mixer) Channels() int   { return m.channels }

// NewVoice creates a paused voice over src
func (m *Mixer) NewVoice(src io.ReadSeeker) Voice {
	v := &mixerVoice{mixer: m, src: src}
	m.mu.Lock()
	m.voices = append(m.voices, v)
	m.mu.Unlock()
	return v
}

// Close detaches every voice
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.voices {
		v.playing = false
		v.closed = true
	}
	m.voices = nil
	m.closed = true
	return nil
}

// SetPlayError makes every later Play fail with err; nil restores normal playback
func (m *Mixer) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

// Voices returns the number of open voices
func (m *Mixer) Voices() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Render fills out with the sum of all playing voices, clipped to int16.
// len(out) should be a multiple of the channel count.
func (m *Mixer) Render(out []int16) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range out {
		out[i] = 0
	}
	if m.closed {
		return
	}

	if cap(m.acc) < len(out) {
		m.acc = make([]int32, len(out))
	}
	acc := m.acc[:len(out)]
	for i := range acc {
		acc[i] = 0
	}

	need := len(out) * audio.BytesPerSample
	if cap(m.scratch) < need {
		m.scratch = make([]byte, need)
	}

	for _, v := range m.voices {
		if !v.playing {
			continue
		}
		n := v.fill(m.scratch[:need])
		for i := 0; i < n/audio.BytesPerSample; i++ {
			acc[i] += int32(int16(binary.LittleEndian.Uint16(m.scratch[i*2:])))
		}
	}

	for i, s := range acc {
		out[i] = audio.ClampInt16(s)
	}
}

func (m *Mixer) remove(v *mixerVoice) {
	for i, other := range m.voices {
		if other == v {
			m.voices = append(m.voices[:i], m.voices[i+1:]...)
			return
		}
	}
}

// mixerVoice state is guarded by the mixer lock
type mixerVoice struct {
	mixer   *Mixer
	src     io.ReadSeeker
	playing bool
	closed  bool
	err     error
}

func (v *mixerVoice) Play() {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	if v.closed {
		return
	}
	if v.mixer.playErr != nil {
		v.err = v.mixer.playErr
		v.playing = false
		return
	}
	// A successful start clears an earlier failure
	v.err = nil
	v.playing = true
}

func (v *mixerVoice) Pause() {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	v.playing = false
}

func (v *mixerVoice) IsPlaying() bool {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	return v.playing
}

func (v *mixerVoice) Seek(offset int64, whence int) (int64, error) {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	if v.closed {
		return 0, errors.New("voice closed")
	}
	return v.src.Seek(offset, whence)
}

// BufferedSize is zero: the mixer reads straight into the device buffer
func (v *mixerVoice) BufferedSize() int { return 0 }

func (v *mixerVoice) Err() error {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	return v.err
}

func (v *mixerVoice) Close() error {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	v.playing = false
	v.mixer.remove(v)
	return nil
}

// fill reads whole frames into buf and returns the bytes read. The voice
// stops at EOF or on a read error. Caller holds the mixer lock.
func (v *mixerVoice) fill(buf []byte) int {
	n, err := io.ReadFull(v.src, buf)
	frameBytes := v.mixer.channels * audio.BytesPerSample
	n -= n % frameBytes
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		v.playing = false
	default:
		v.playing = false
		v.err = err
	}
	return n
}
