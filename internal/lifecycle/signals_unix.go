//go:build unix

// ABOUTME: Lifecycle signal mapping on unix
// ABOUTME: SIGUSR1 deactivates and SIGUSR2 activates
package lifecycle

import (
	"os"
	"syscall"

	"github.com/aerials-audio/acaudio/pkg/acaudio"
)

// SIGUSR1 backgrounds the player, SIGUSR2 brings it back
var mapping = map[os.Signal]acaudio.Signal{
	syscall.SIGUSR1: acaudio.SignalDeactivated,
	syscall.SIGUSR2: acaudio.SignalActivated,
}
