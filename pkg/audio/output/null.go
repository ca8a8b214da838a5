// ABOUTME: Null output device with a manually advanced clock
// ABOUTME: Plays through the software mixer without audio hardware
package output

import (
	"time"
)

// Null is a device whose clock only moves when Advance is called
type Null struct {
	*Mixer
	rendered int64
}

// NewNull creates a null device for the given format
func NewNull(sampleRate, channels int) *Null {
	return &Null{Mixer: NewMixer(sampleRate, channels)}
}

// AdvanceFrames renders frames of output and returns the mixed samples
func (n *Null) AdvanceFrames(frames int) []int16 {
	if frames <= 0 {
		return nil
	}
	out := make([]int16, frames*n.Channels())
	n.Render(out)
	n.rendered += int64(frames)
	return out
}

// Advance renders d worth of output
func (n *Null) Advance(d time.Duration) []int16 {
	frames := int(d * time.Duration(n.SampleRate()) / time.Second)
	return n.AdvanceFrames(frames)
}

// Rendered returns the total frames rendered so far
func (n *Null) Rendered() int64 {
	return n.rendered
}
