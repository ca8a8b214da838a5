// ABOUTME: In-process audio playback manager
// ABOUTME: Resource and unit tables, a preview slot and lifecycle handling on two engines
// Package acaudio loads encoded audio buffers and plays them as sound units.
//
// A Manager owns two engines on one output device. The player engine
// decodes resources up front so units start instantly and many units can
// share one resource. The preview engine streams a single ad-hoc buffer and
// replaces it whenever a new preview starts.
//
// Each unit keeps a cached playing flag. The flag is a best-effort cache:
// a non-looping unit that finishes on its own keeps reporting playing until
// CheckPlaying re-queries the engine. The lifecycle handlers use the flag to
// remember which units to resume after the application returns to the
// foreground.
//
// Example:
//
//	m, err := acaudio.New(acaudio.Config{})
//	defer m.Close()
//
//	res, err := m.CreateResource(data)
//	u, lengthMs, err := m.CreateUnit(res)
//	pos, err := m.PlayUnit(u, false)
package acaudio
