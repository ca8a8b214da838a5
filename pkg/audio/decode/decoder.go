// ABOUTME: Stream interface definition and decoder registry
// ABOUTME: Common interface for all incremental audio decoders
package decode

import (
	"fmt"

	"github.com/aerials-audio/acaudio/pkg/audio"
)

// Stream decodes audio incrementally to interleaved int16 samples
type Stream interface {
	// Format returns the native sample rate and channel count
	Format() audio.Format

	// Frames returns the total frame count at the native rate, or -1 when unknown
	Frames() int64

	// Read decodes into dst and returns the number of samples written.
	// The count is always a multiple of the channel count. At the end of
	// the stream Read returns 0, io.EOF.
	Read(dst []int16) (int, error)

	// Close releases decoder resources
	Close() error
}

// Opener constructs a Stream over an encoded buffer
type Opener func(data []byte) (Stream, error)

var openers = map[string]Opener{
	CodecWAV:    openWAV,
	CodecAIFF:   openAIFF,
	CodecMP3:    openMP3,
	CodecVorbis: openVorbis,
	CodecFLAC:   openFLAC,
	CodecOpus:   openOpus,
}

// Open detects the codec of data and returns a decoding Stream over it
func Open(data []byte) (Stream, error) {
	codec, err := Detect(data)
	if err != nil {
		return nil, err
	}

	open, ok := openers[codec]
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %s", ErrUnsupportedFormat, codec)
	}

	s, err := open(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupportedFormat, codec, err)
	}
	if !s.Format().Valid() {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %s: invalid stream format", ErrUnsupportedFormat, codec)
	}
	return s, nil
}

// Codecs lists the codecs Open understands
func Codecs() []string {
	return []string{CodecWAV, CodecAIFF, CodecMP3, CodecVorbis, CodecFLAC, CodecOpus}
}
