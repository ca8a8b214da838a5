// ABOUTME: Tests for audio types
// ABOUTME: Tests sample conversion and frame/time math
package audio

import "testing"

func TestSampleFromBits(t *testing.T) {
	tests := []struct {
		name     string
		sample   int32
		bitDepth int
		expected int16
	}{
		{"16 bit passthrough", -1234, 16, -1234},
		{"24 bit", 0x123456, 24, 0x1234},
		{"32 bit", 0x12345678, 32, 0x1234},
		{"8 bit", -64, 8, -64 << 8},
		{"12 bit", 100, 12, 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleFromBits(tt.sample, tt.bitDepth); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestFloatToInt16Clips(t *testing.T) {
	if got := FloatToInt16(2); got != 32767 {
		t.Errorf("expected 32767, got %d", got)
	}
	if got := FloatToInt16(-2); got != -32768 {
		t.Errorf("expected -32768, got %d", got)
	}
	if got := FloatToInt16(0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestClampInt16(t *testing.T) {
	if got := ClampInt16(40000); got != 32767 {
		t.Errorf("expected 32767, got %d", got)
	}
	if got := ClampInt16(-40000); got != -32768 {
		t.Errorf("expected -32768, got %d", got)
	}
	if got := ClampInt16(123); got != 123 {
		t.Errorf("expected 123, got %d", got)
	}
}

func TestFrameMath(t *testing.T) {
	if got := FramesToMillis(48000, 48000); got != 1000 {
		t.Errorf("expected 1000ms, got %d", got)
	}
	if got := FramesToMillis(22050, 44100); got != 500 {
		t.Errorf("expected 500ms, got %d", got)
	}
	if got := MillisToFrames(1500, 48000); got != 72000 {
		t.Errorf("expected 72000 frames, got %d", got)
	}
	if got := MillisToFrames(-5, 48000); got != 0 {
		t.Errorf("expected negative ms to map to 0 frames, got %d", got)
	}
	if got := FramesToMillis(100, 0); got != 0 {
		t.Errorf("expected 0 for zero rate, got %d", got)
	}
}

func TestFormatValid(t *testing.T) {
	f := Format{SampleRate: 48000, Channels: 2}
	if !f.Valid() {
		t.Error("expected format to be valid")
	}
	if (Format{}).Valid() {
		t.Error("expected zero format to be invalid")
	}
}
