//go:build !portaudio

// ABOUTME: PortAudio backend placeholder for builds without the portaudio tag
// ABOUTME: Open reports ErrPortAudioDisabled instead of failing to link
package output

import (
	"errors"

	"go.uber.org/zap"
)

// ErrPortAudioDisabled is returned when the binary was built without PortAudio
var ErrPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// NewPortAudio reports that PortAudio is not compiled in
func NewPortAudio(sampleRate, channels int, logger *zap.Logger) (Device, error) {
	return nil, ErrPortAudioDisabled
}
