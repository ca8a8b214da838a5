// ABOUTME: Channel layout conversion for interleaved int16 audio
// ABOUTME: Duplicates mono, averages down to mono, and maps other layouts by index
package resample

import "github.com/aerials-audio/acaudio/pkg/audio"

// Remix appends input converted from inChannels to outChannels to dst
func Remix(dst, input []int16, inChannels, outChannels int) []int16 {
	frames := len(input) / inChannels
	if inChannels == outChannels {
		return append(dst, input[:frames*inChannels]...)
	}

	for f := 0; f < frames; f++ {
		frame := input[f*inChannels : (f+1)*inChannels]
		switch {
		case inChannels == 1:
			for ch := 0; ch < outChannels; ch++ {
				dst = append(dst, frame[0])
			}
		case outChannels == 1:
			var sum int32
			for _, s := range frame {
				sum += int32(s)
			}
			dst = append(dst, audio.ClampInt16(sum/int32(inChannels)))
		default:
			for ch := 0; ch < outChannels; ch++ {
				dst = append(dst, frame[ch%inChannels])
			}
		}
	}
	return dst
}
