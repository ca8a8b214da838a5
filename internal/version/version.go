// ABOUTME: Version and product identity for the player binaries
// ABOUTME: Reported by -version and attached to log sessions
package version

import "fmt"

const (
	Version      = "0.3.0"
	Product      = "acaudio"
	Manufacturer = "Aerials Audio"
)

// String returns the product and version, e.g. "acaudio 0.3.0"
func String() string {
	return fmt.Sprintf("%s %s", Product, Version)
}
