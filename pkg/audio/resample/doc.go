// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded audio to the output device rate and channel layout
// Package resample provides sample rate and channel conversion for int16 PCM.
//
// The Resampler is continuous across chunks: feeding a stream in pieces
// yields the same frames as feeding it whole, which the streamed decode
// path relies on.
//
// Example:
//
//	r := resample.New(44100, 48000, 2)
//	out = r.Resample(out[:0], chunk)
//	out = r.Flush(out)
package resample
