// ABOUTME: Audio type definitions
// ABOUTME: Defines the PCM format, frame/time math and sample conversions
package audio

// BytesPerSample is the size of one interleaved 16-bit PCM sample
const BytesPerSample = 2

// Format describes audio stream format
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// Valid reports whether the format can describe playable PCM
func (f Format) Valid() bool {
	return f.SampleRate > 0 && f.Channels > 0
}

// FramesToMillis converts a frame count at rate to milliseconds
func FramesToMillis(frames int64, rate int) int64 {
	if rate <= 0 || frames <= 0 {
		return 0
	}
	return frames * 1000 / int64(rate)
}

// MillisToFrames converts milliseconds to a frame count at rate
func MillisToFrames(ms int64, rate int) int64 {
	if rate <= 0 || ms <= 0 {
		return 0
	}
	return ms * int64(rate) / 1000
}

// SampleFromBits converts a signed sample of arbitrary bit depth to int16
func SampleFromBits(sample int32, bitDepth int) int16 {
	switch {
	case bitDepth == 16:
		return int16(sample)
	case bitDepth > 16:
		return int16(sample >> (bitDepth - 16))
	case bitDepth == 8:
		// 8-bit sources are already signed by the decoders
		return int16(sample << 8)
	case bitDepth > 0:
		return int16(sample << (16 - bitDepth))
	default:
		return int16(sample)
	}
}

// FloatToInt16 converts a float sample in [-1, 1] to int16 with clipping
func FloatToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	if x >= 0 {
		return int16(x * 32767)
	}
	return int16(x * 32768)
}

// ClampInt16 clamps a mixed sum back into the int16 range
func ClampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
