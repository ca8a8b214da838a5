// ABOUTME: Tests for backend selection
// ABOUTME: Checks Open by name and format validation
package output

import (
	"errors"
	"testing"
)

func TestOpenNull(t *testing.T) {
	dev, err := Open(BackendNull, 44100, 2, nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer dev.Close()

	if dev.SampleRate() != 44100 || dev.Channels() != 2 {
		t.Errorf("unexpected format %dHz %dch", dev.SampleRate(), dev.Channels())
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("jack", 48000, 2, nil)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestOpenInvalidFormat(t *testing.T) {
	if _, err := Open(BackendNull, 0, 2, nil); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if _, err := Open(BackendNull, 48000, 0, nil); err == nil {
		t.Error("expected error for zero channels")
	}
}
