// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC frame by frame via mewkiz/flac
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aerials-audio/acaudio/pkg/audio"
	"github.com/mewkiz/flac"
)

type flacStream struct {
	stream  *flac.Stream
	format  audio.Format
	frames  int64
	pending []int16
	eof     bool
}

func openFLAC(data []byte) (Stream, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create flac decoder: %w", err)
	}

	frames := int64(stream.Info.NSamples)
	if frames == 0 {
		frames = -1
	}

	return &flacStream{
		stream: stream,
		format: audio.Format{
			Codec:      CodecFLAC,
			SampleRate: int(stream.Info.SampleRate),
			Channels:   int(stream.Info.NChannels),
			BitDepth:   int(stream.Info.BitsPerSample),
		},
		frames: frames,
	}, nil
}

func (s *flacStream) Format() audio.Format { return s.format }
func (s *flacStream) Frames() int64        { return s.frames }

func (s *flacStream) Read(dst []int16) (int, error) {
	want := len(dst) - len(dst)%s.format.Channels
	if want == 0 {
		return 0, nil
	}

	for len(s.pending) == 0 {
		if s.eof {
			return 0, io.EOF
		}
		if err := s.nextFrame(); err != nil {
			return 0, err
		}
	}

	n := copy(dst[:want], s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// nextFrame decodes one FLAC frame into the pending interleaved buffer
func (s *flacStream) nextFrame() error {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("flac decode error: %w", err)
	}

	channels := len(f.Subframes)
	if channels != s.format.Channels || channels == 0 {
		return fmt.Errorf("flac frame has %d channels, stream has %d", channels, s.format.Channels)
	}

	blockSize := len(f.Subframes[0].Samples)
	if cap(s.pending) < blockSize*channels {
		s.pending = make([]int16, blockSize*channels)
	}
	s.pending = s.pending[:blockSize*channels]
	for i := 0; i < blockSize; i++ {
		for ch := 0; ch < channels; ch++ {
			s.pending[i*channels+ch] = audio.SampleFromBits(f.Subframes[ch].Samples[i], s.format.BitDepth)
		}
	}
	return nil
}

func (s *flacStream) Close() error {
	return s.stream.Close()
}
