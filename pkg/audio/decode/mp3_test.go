// ABOUTME: Tests for MP3 stream conversion
// ABOUTME: Uses a fake go-mp3 reader to check sample and length handling
package decode

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMP3Reader simulates mp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	samples    []int16
	offset     int
	chunk      int // max samples per Read, simulates short reads
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }
func (m *mockMP3Reader) Length() int64   { return int64(len(m.samples) * 2) }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}
	n := len(buf) / 2
	if m.chunk > 0 && n > m.chunk {
		n = m.chunk
	}
	if rest := len(m.samples) - m.offset; n > rest {
		n = rest
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(m.samples[m.offset+i]))
	}
	m.offset += n
	return n * 2, nil
}

func TestMP3StreamFormat(t *testing.T) {
	s := newMP3Stream(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 200)})

	assert.Equal(t, 44100, s.Format().SampleRate)
	assert.Equal(t, 2, s.Format().Channels)
	assert.Equal(t, int64(100), s.Frames())
}

func TestMP3StreamRead(t *testing.T) {
	samples := []int16{1, -1, 2, -2, 3, -3, 4, -4}
	s := newMP3Stream(&mockMP3Reader{sampleRate: 48000, samples: samples, chunk: 1})

	var out []int16
	buf := make([]int16, 4)
	for {
		n, err := s.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, samples, out)
}

func TestMP3StreamUnknownLength(t *testing.T) {
	s := newMP3Stream(&mockMP3Reader{sampleRate: 48000})
	assert.Equal(t, int64(-1), s.Frames())

	n, err := s.Read(make([]int16, 4))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}
