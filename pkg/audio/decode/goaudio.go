// ABOUTME: Shared PCM stream over go-audio IntBuffer decoders
// ABOUTME: Used by the WAV and AIFF decoders
package decode

import (
	"errors"
	"io"

	"github.com/aerials-audio/acaudio/pkg/audio"
	goaudio "github.com/go-audio/audio"
)

// pcmBufferReader is the subset of go-audio decoders used here, to allow testing
type pcmBufferReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type intStream struct {
	dec       pcmBufferReader
	format    audio.Format
	frames    int64
	remaining int64 // samples, -1 when unknown
	unsigned  bool  // 8-bit WAV stores unsigned samples
	buf       *goaudio.IntBuffer
}

func newIntStream(dec pcmBufferReader, format audio.Format, frames int64, unsigned bool) *intStream {
	remaining := int64(-1)
	if frames >= 0 {
		remaining = frames * int64(format.Channels)
	}
	return &intStream{
		dec:       dec,
		format:    format,
		frames:    frames,
		remaining: remaining,
		unsigned:  unsigned,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
			SourceBitDepth: format.BitDepth,
		},
	}
}

func (s *intStream) Format() audio.Format { return s.format }
func (s *intStream) Frames() int64        { return s.frames }
func (s *intStream) Close() error         { return nil }

func (s *intStream) Read(dst []int16) (int, error) {
	want := len(dst) - len(dst)%s.format.Channels
	if want == 0 {
		return 0, nil
	}
	if s.remaining == 0 {
		return 0, io.EOF
	}
	if s.remaining > 0 && int64(want) > s.remaining {
		want = int(s.remaining)
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	n -= n % s.format.Channels
	if n <= 0 {
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			s.remaining = 0
			return 0, io.EOF
		}
		return 0, err
	}

	for i := 0; i < n; i++ {
		v := int32(s.buf.Data[i])
		if s.unsigned {
			v -= 128
		}
		dst[i] = audio.SampleFromBits(v, s.format.BitDepth)
	}
	if s.remaining > 0 {
		s.remaining -= int64(n)
	}

	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return n, err
	}
	return n, nil
}
