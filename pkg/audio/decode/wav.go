// ABOUTME: WAV audio decoder
// ABOUTME: Decodes PCM WAV via go-audio/wav
package decode

import (
	"bytes"
	"fmt"

	"github.com/aerials-audio/acaudio/pkg/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

func openWAV(data []byte) (Stream, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file")
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}
	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit wav", ErrUnsupportedEncoding, dec.BitDepth)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating wav data chunk: %w", err)
	}

	format := audio.Format{
		Codec:      CodecWAV,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	if !format.Valid() {
		return nil, fmt.Errorf("invalid wav format: %dHz %dch", format.SampleRate, format.Channels)
	}

	bytesPerFrame := int64(format.BitDepth / 8 * format.Channels)
	frames := dec.PCMLen() / bytesPerFrame

	return newIntStream(dec, format, frames, format.BitDepth == 8), nil
}
