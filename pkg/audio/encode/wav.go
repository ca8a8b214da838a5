// ABOUTME: WAV encoder
// ABOUTME: Encodes int16 samples to a 16-bit PCM WAV container
package encode

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"
)

const wavFormatPCM = 1

// WAV writes interleaved 16-bit samples as a PCM WAV file
func WAV(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid wav format: %dHz %dch", sampleRate, channels)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("sample count %d is not a multiple of %d channels", len(samples), channels)
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, wavFormatPCM)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav write failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav finalize failed: %w", err)
	}
	return nil
}

// WAVBytes encodes samples to an in-memory WAV file
func WAVBytes(sampleRate, channels int, samples []int16) ([]byte, error) {
	ws := &writerseeker.WriterSeeker{}
	if err := WAV(ws, sampleRate, channels, samples); err != nil {
		return nil, err
	}
	return io.ReadAll(ws.Reader())
}
