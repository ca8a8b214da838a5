// ABOUTME: Test tone synthesis
// ABOUTME: Generates interleaved int16 sine waves and silence
package encode

import "math"

// Tone generates frames of a sine wave at freq Hz on every channel, at half amplitude
func Tone(sampleRate, channels, frames int, freq float64) []int16 {
	out := make([]int16, frames*channels)
	for i := 0; i < frames; i++ {
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * 16383)
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = v
		}
	}
	return out
}

// Ramp generates frames whose sample value equals the frame index (mod 32768),
// handy for checking positions after seeks
func Ramp(channels, frames int) []int16 {
	out := make([]int16, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = int16(i % 32768)
		}
	}
	return out
}
