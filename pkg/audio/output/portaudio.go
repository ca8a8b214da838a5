//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Renders the software mixer from the PortAudio stream callback
package output

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"
)

// PortAudio output implementation
type PortAudio struct {
	*Mixer
	stream *portaudio.Stream
}

// NewPortAudio initializes PortAudio and starts the default output stream
func NewPortAudio(sampleRate, channels int, logger *zap.Logger) (Device, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p := &PortAudio{Mixer: NewMixer(sampleRate, channels)}
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), 0, func(out []int16) {
		p.Render(out)
	})
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start stream: %w", err)
	}
	p.stream = stream

	logger.Info("audio output initialized",
		zap.String("backend", "portaudio"), zap.Int("rate", sampleRate), zap.Int("channels", channels))

	return p, nil
}

// Close releases resources
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			return err
		}
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
	}
	if err := p.Mixer.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
