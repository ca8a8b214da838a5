// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the Device and Voice abstractions and their backends
// Package output provides playback devices.
//
// A Device is opened once per process and shared. Each Voice pulls 16-bit
// little-endian interleaved PCM from its own io.ReadSeeker, so many voices
// play concurrently on one device. Backends:
//
//   - oto: default, one context per process
//   - malgo: miniaudio through a software mixer
//   - portaudio: PortAudio through a software mixer (build with -tags portaudio)
//   - null: software mixer driven by a manual clock, for tests and headless use
//
// Example:
//
//	dev, err := output.Open("oto", 48000, 2, logger)
//	v := dev.NewVoice(bytes.NewReader(pcm))
//	v.Play()
package output
