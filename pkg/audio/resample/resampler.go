// ABOUTME: Linear resampler for converting audio sample rates
// ABOUTME: Keeps the previous frame so interpolation spans chunk boundaries
package resample

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	position   int64 // past lastFrame, in 1/outputRate input frames
	lastFrame  []int16
	primed     bool
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		lastFrame:  make([]int16, channels),
	}
}

// Passthrough reports whether the rates match and samples are copied unchanged
func (r *Resampler) Passthrough() bool {
	return r.inputRate == r.outputRate
}

// Resample appends input converted to the output rate to dst and returns it.
// input holds interleaved frames; a trailing partial frame is ignored.
func (r *Resampler) Resample(dst, input []int16) []int16 {
	frames := len(input) / r.channels
	if frames == 0 {
		return dst
	}
	if r.Passthrough() {
		return append(dst, input[:frames*r.channels]...)
	}

	if !r.primed {
		copy(r.lastFrame, input[:r.channels])
		input = input[r.channels:]
		frames--
		r.primed = true
	}

	// Index 0 is lastFrame, index i>0 is input frame i-1
	sample := func(i, ch int) int16 {
		if i == 0 {
			return r.lastFrame[ch]
		}
		return input[(i-1)*r.channels+ch]
	}

	// Integer positions keep chunked and whole-stream output identical
	out := int64(r.outputRate)
	for r.position < int64(frames)*out {
		idx := int(r.position / out)
		frac := float64(r.position%out) / float64(out)
		for ch := 0; ch < r.channels; ch++ {
			s1 := float64(sample(idx, ch))
			if frac == 0 {
				dst = append(dst, int16(s1))
				continue
			}
			s2 := float64(sample(idx+1, ch))
			dst = append(dst, int16(s1*(1.0-frac)+s2*frac))
		}
		r.position += int64(r.inputRate)
	}

	if frames > 0 {
		copy(r.lastFrame, input[(frames-1)*r.channels:frames*r.channels])
		r.position -= int64(frames) * out
	}
	return dst
}

// Flush appends the final frame if it is still owed and resets the resampler
func (r *Resampler) Flush(dst []int16) []int16 {
	if r.primed && !r.Passthrough() && r.position == 0 {
		dst = append(dst, r.lastFrame...)
	}
	r.Reset()
	return dst
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0
	r.primed = false
	for i := range r.lastFrame {
		r.lastFrame[i] = 0
	}
}

// OutputFrames estimates the output frame count for inputFrames
func (r *Resampler) OutputFrames(inputFrames int64) int64 {
	if r.Passthrough() || inputFrames <= 0 {
		return inputFrames
	}
	return (inputFrames-1)*int64(r.outputRate)/int64(r.inputRate) + 1
}
