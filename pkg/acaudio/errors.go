// ABOUTME: Sentinel errors returned by the manager
// ABOUTME: Wrapped with context; match with errors.Is
package acaudio

import (
	"errors"

	"github.com/aerials-audio/acaudio/pkg/audio/decode"
)

var (
	ErrEmptyBuffer       = errors.New("empty audio buffer")
	ErrUnsupportedFormat = decode.ErrUnsupportedFormat
	ErrUnknownResource   = errors.New("unknown resource")
	ErrResourceInUse     = errors.New("resource referenced by live units")
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrUnitInit          = errors.New("unit initialization failed")
	ErrStartFailed       = errors.New("start failed")
	ErrClosed            = errors.New("manager closed")
)
