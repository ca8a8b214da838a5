// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Sniffs encoded buffers and decodes them incrementally to 16-bit PCM
// Package decode turns encoded in-memory audio into incremental PCM streams.
//
// Supports: WAV and AIFF (go-audio), MP3 (go-mp3), Ogg Vorbis (oggvorbis),
// FLAC (mewkiz/flac) and Ogg Opus (libopusfile via hraban/opus).
//
// Open sniffs the container from magic bytes and returns a Stream which
// decodes lazily from the given slice. The slice must stay untouched for
// the lifetime of the Stream.
//
// Example:
//
//	s, err := decode.Open(data)
//	if errors.Is(err, decode.ErrUnsupportedFormat) {
//	    // not audio we can play
//	}
//	buf := make([]int16, 4096)
//	n, err := s.Read(buf)
package decode
