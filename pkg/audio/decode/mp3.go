// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 to int16 samples via go-mp3
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/aerials-audio/acaudio/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces 16-bit little-endian stereo
const mp3Channels = 2

// mp3Reader is the subset of mp3.Decoder used here, to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

// mp3Stream decodes MP3 audio
type mp3Stream struct {
	dec    mp3Reader
	format audio.Format
	frames int64
	buf    []byte
}

func openMP3(data []byte) (Stream, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}
	return newMP3Stream(dec), nil
}

func newMP3Stream(dec mp3Reader) *mp3Stream {
	frames := int64(-1)
	if n := dec.Length(); n > 0 {
		frames = n / (mp3Channels * audio.BytesPerSample)
	}
	return &mp3Stream{
		dec: dec,
		format: audio.Format{
			Codec:      CodecMP3,
			SampleRate: dec.SampleRate(),
			Channels:   mp3Channels,
			BitDepth:   16,
		},
		frames: frames,
	}
}

func (s *mp3Stream) Format() audio.Format { return s.format }
func (s *mp3Stream) Frames() int64        { return s.frames }

// Read decodes MP3 bytes into int16 samples
func (s *mp3Stream) Read(dst []int16) (int, error) {
	want := len(dst) - len(dst)%mp3Channels
	if want == 0 {
		return 0, nil
	}

	need := want * audio.BytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	// go-mp3 may return short reads, fill until a whole frame is available
	n, err := io.ReadAtLeast(s.dec, s.buf, mp3Channels*audio.BytesPerSample)
	samples := n / audio.BytesPerSample
	samples -= samples % mp3Channels
	for i := 0; i < samples; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(s.buf[i*2:]))
	}

	if samples == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return samples, err
}

// Close releases decoder resources
func (s *mp3Stream) Close() error {
	return nil
}
