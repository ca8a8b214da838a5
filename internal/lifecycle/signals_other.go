//go:build !unix

// ABOUTME: Lifecycle signal mapping for platforms without user signals
// ABOUTME: No process signal maps to activate or deactivate
package lifecycle

import (
	"os"

	"github.com/aerials-audio/acaudio/pkg/acaudio"
)

var mapping = map[os.Signal]acaudio.Signal{}
