// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and frame/sample conversion helpers
// Package audio provides fundamental audio types and utilities.
//
// Everything downstream of the decoders works on interleaved signed 16-bit
// PCM. This package defines:
//   - Format: codec, sample rate, channel count, bit depth
//   - frame/millisecond conversions used for unit lengths and seeking
//   - sample conversions between bit depths and float samples
//
// Example:
//
//	format := audio.Format{SampleRate: 48000, Channels: 2}
//	frames := audio.MillisToFrames(1500, format.SampleRate) // 72000
//	ms := audio.FramesToMillis(frames, format.SampleRate)   // 1500
package audio
