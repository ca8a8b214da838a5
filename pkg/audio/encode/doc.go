// ABOUTME: Audio encoder package
// ABOUTME: Writes PCM WAV files and synthesizes test tones
// Package encode produces encoded audio from 16-bit PCM.
//
// It exists so hosts and tests can create real encoded buffers without
// shipping binary fixtures: WAV is written through go-audio/wav.
//
// Example:
//
//	pcm := encode.Tone(48000, 2, 48000, 440)
//	data, err := encode.WAVBytes(48000, 2, pcm)
package encode
