// ABOUTME: AIFF audio decoder
// ABOUTME: Decodes PCM AIFF via go-audio/aiff
package decode

import (
	"bytes"
	"fmt"

	"github.com/aerials-audio/acaudio/pkg/audio"
	"github.com/go-audio/aiff"
)

func openAIFF(data []byte) (Stream, error) {
	dec := aiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid aiff file")
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit aiff", ErrUnsupportedEncoding, dec.BitDepth)
	}

	f := dec.Format()
	if f == nil {
		return nil, fmt.Errorf("aiff has no format")
	}

	format := audio.Format{
		Codec:      CodecAIFF,
		SampleRate: f.SampleRate,
		Channels:   f.NumChannels,
		BitDepth:   int(dec.BitDepth),
	}

	return newIntStream(dec, format, int64(dec.NumSampleFrames), false), nil
}
