// ABOUTME: Tests for resampling and channel remix
// ABOUTME: Checks interpolation values and chunked continuity
package resample

import (
	"testing"
)

func equal(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResampleSameRate(t *testing.T) {
	r := New(48000, 48000, 2)
	input := []int16{1, 2, 3, 4, 5}

	out := r.Resample(nil, input)
	if !equal(out, []int16{1, 2, 3, 4}) {
		t.Errorf("expected passthrough of whole frames, got %v", out)
	}
	if out = r.Flush(out); len(out) != 4 {
		t.Errorf("flush should not add frames on passthrough, got %v", out)
	}
}

func TestResampleUpsample(t *testing.T) {
	r := New(24000, 48000, 1)

	out := r.Resample(nil, []int16{0, 100, 200})
	out = r.Flush(out)

	expected := []int16{0, 50, 100, 150, 200}
	if !equal(out, expected) {
		t.Errorf("expected %v, got %v", expected, out)
	}
}

func TestResampleDownsample(t *testing.T) {
	r := New(48000, 24000, 1)

	out := r.Resample(nil, []int16{0, 10, 20, 30, 40})
	out = r.Flush(out)

	expected := []int16{0, 20, 40}
	if !equal(out, expected) {
		t.Errorf("expected %v, got %v", expected, out)
	}
}

func TestResampleChunkedMatchesWhole(t *testing.T) {
	input := make([]int16, 2*1000)
	for i := range input {
		input[i] = int16(i * 7 % 3000)
	}

	whole := New(44100, 48000, 2)
	expected := whole.Flush(whole.Resample(nil, input))

	for _, chunk := range []int{2, 6, 34, 500} {
		r := New(44100, 48000, 2)
		var out []int16
		for off := 0; off < len(input); off += chunk {
			end := off + chunk
			if end > len(input) {
				end = len(input)
			}
			out = r.Resample(out, input[off:end])
		}
		out = r.Flush(out)

		if !equal(out, expected) {
			t.Errorf("chunk %d: got %d samples, expected %d", chunk, len(out), len(expected))
		}
	}
}

func TestOutputFrames(t *testing.T) {
	tests := []struct {
		name     string
		in, out  int
		frames   int64
		expected int64
	}{
		{"same rate", 48000, 48000, 1000, 1000},
		{"upsample", 24000, 48000, 3, 5},
		{"downsample", 48000, 24000, 5, 3},
		{"empty", 44100, 48000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.in, tt.out, 1)
			if got := r.OutputFrames(tt.frames); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestOutputFramesMatchesResample(t *testing.T) {
	input := make([]int16, 4410)
	r := New(44100, 48000, 1)
	out := r.Flush(r.Resample(nil, input))

	if got := r.OutputFrames(int64(len(input))); got != int64(len(out)) {
		t.Errorf("estimate %d, produced %d", got, len(out))
	}
}

func TestReset(t *testing.T) {
	r := New(44100, 48000, 2)
	r.Resample(nil, []int16{100, 200, 300, 400, 500, 600})
	r.Reset()

	if r.position != 0 || r.primed {
		t.Error("expected reset state")
	}
	for _, s := range r.lastFrame {
		if s != 0 {
			t.Error("expected last frame cleared")
		}
	}
}

func TestRemix(t *testing.T) {
	tests := []struct {
		name     string
		input    []int16
		in, out  int
		expected []int16
	}{
		{"mono to stereo", []int16{1, 2}, 1, 2, []int16{1, 1, 2, 2}},
		{"stereo to mono", []int16{10, 20, -10, -30}, 2, 1, []int16{15, -20}},
		{"same layout", []int16{1, 2, 3, 4}, 2, 2, []int16{1, 2, 3, 4}},
		{"stereo to quad", []int16{1, 2}, 2, 4, []int16{1, 2, 1, 2}},
		{"partial frame dropped", []int16{1, 2, 3}, 2, 1, []int16{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Remix(nil, tt.input, tt.in, tt.out)
			if !equal(out, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, out)
			}
		})
	}
}
