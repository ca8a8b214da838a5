// ABOUTME: Sentinel errors for decoding
// ABOUTME: Callers match them with errors.Is
package decode

import "errors"

var (
	ErrEmptyData           = errors.New("empty audio data")
	ErrUnsupportedFormat   = errors.New("unsupported audio format")
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")
)
