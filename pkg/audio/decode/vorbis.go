// ABOUTME: Ogg Vorbis audio decoder
// ABOUTME: Decodes Vorbis to int16 samples via oggvorbis
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aerials-audio/acaudio/pkg/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the subset of oggvorbis.Reader used here, to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

type vorbisStream struct {
	dec    oggReader
	format audio.Format
	frames int64
	buf    []float32
}

func openVorbis(data []byte) (Stream, error) {
	dec, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create vorbis decoder: %w", err)
	}
	return newVorbisStream(dec), nil
}

func newVorbisStream(dec oggReader) *vorbisStream {
	frames := dec.Length()
	if frames <= 0 {
		frames = -1
	}
	return &vorbisStream{
		dec: dec,
		format: audio.Format{
			Codec:      CodecVorbis,
			SampleRate: dec.SampleRate(),
			Channels:   dec.Channels(),
			BitDepth:   16,
		},
		frames: frames,
	}
}

func (s *vorbisStream) Format() audio.Format { return s.format }
func (s *vorbisStream) Frames() int64        { return s.frames }
func (s *vorbisStream) Close() error         { return nil }

func (s *vorbisStream) Read(dst []int16) (int, error) {
	want := len(dst) - len(dst)%s.format.Channels
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	s.buf = s.buf[:want]

	// Read returns the number of values decoded, a multiple of the channel count
	n, err := s.dec.Read(s.buf)
	n -= n % s.format.Channels
	for i := 0; i < n; i++ {
		dst[i] = audio.FloatToInt16(s.buf[i])
	}

	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	if err == io.EOF {
		err = nil
	}
	return n, err
}
