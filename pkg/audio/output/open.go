// ABOUTME: Backend selection by name
// ABOUTME: Maps the -backend flag and Config.Backend to a Device constructor
package output

import (
	"fmt"

	"go.uber.org/zap"
)

// Backend names accepted by Open
const (
	BackendOto       = "oto"
	BackendMalgo     = "malgo"
	BackendPortAudio = "portaudio"
	BackendNull      = "null"
)

// Backends lists the names accepted by Open
func Backends() []string {
	return []string{BackendOto, BackendMalgo, BackendPortAudio, BackendNull}
}

// Open opens the named backend
func Open(backend string, sampleRate, channels int, logger *zap.Logger) (Device, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid output format: %dHz %dch", sampleRate, channels)
	}

	switch backend {
	case BackendOto, "":
		dev, err := NewOto(sampleRate, channels, logger)
		if err != nil {
			return nil, err
		}
		return dev, nil
	case BackendMalgo:
		dev, err := NewMalgo(sampleRate, channels, logger)
		if err != nil {
			return nil, err
		}
		return dev, nil
	case BackendPortAudio:
		return NewPortAudio(sampleRate, channels, logger)
	case BackendNull:
		return NewNull(sampleRate, channels), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
