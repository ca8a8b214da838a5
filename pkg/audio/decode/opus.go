// ABOUTME: Ogg Opus audio decoder
// ABOUTME: Decodes Ogg Opus to int16 samples via libopusfile
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/aerials-audio/acaudio/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// Opus always decodes at 48kHz
const opusSampleRate = 48000

type opusStream struct {
	stream *opus.Stream
	format audio.Format
	frames int64
}

func openOpus(data []byte) (Stream, error) {
	head, err := parseOpusHead(firstOggPacket(data))
	if err != nil {
		return nil, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create opus stream: %w", err)
	}

	frames := int64(-1)
	if granule, ok := lastOggGranule(data); ok && granule > int64(head.preSkip) {
		frames = granule - int64(head.preSkip)
	}

	return &opusStream{
		stream: stream,
		format: audio.Format{
			Codec:      CodecOpus,
			SampleRate: opusSampleRate,
			Channels:   head.channels,
			BitDepth:   16,
		},
		frames: frames,
	}, nil
}

func (s *opusStream) Format() audio.Format { return s.format }
func (s *opusStream) Frames() int64        { return s.frames }

func (s *opusStream) Read(dst []int16) (int, error) {
	want := len(dst) - len(dst)%s.format.Channels
	if want == 0 {
		return 0, nil
	}

	// Read returns samples per channel
	n, err := s.stream.Read(dst[:want])
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("opus decode failed: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n * s.format.Channels, nil
}

func (s *opusStream) Close() error {
	return s.stream.Close()
}

type opusHead struct {
	channels int
	preSkip  uint16
}

// parseOpusHead reads the identification header (RFC 7845 section 5.1)
func parseOpusHead(packet []byte) (opusHead, error) {
	if len(packet) < 19 || !bytes.HasPrefix(packet, []byte("OpusHead")) {
		return opusHead{}, fmt.Errorf("missing OpusHead packet")
	}
	channels := int(packet[9])
	if channels < 1 || channels > 2 {
		return opusHead{}, fmt.Errorf("%w: %d opus channels", ErrUnsupportedEncoding, channels)
	}
	return opusHead{
		channels: channels,
		preSkip:  binary.LittleEndian.Uint16(packet[10:12]),
	}, nil
}

// lastOggGranule returns the granule position of the last Ogg page
func lastOggGranule(data []byte) (int64, bool) {
	i := bytes.LastIndex(data, []byte("OggS"))
	if i < 0 || i+14 > len(data) {
		return 0, false
	}
	granule := int64(binary.LittleEndian.Uint64(data[i+6 : i+14]))
	if granule < 0 {
		return 0, false
	}
	return granule, true
}
