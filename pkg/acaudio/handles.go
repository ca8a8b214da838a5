// ABOUTME: Typed handles for resources and units
// ABOUTME: Generation-checked keys valid only within one process lifetime
package acaudio

import (
	"github.com/aerials-audio/acaudio/pkg/slot"
)

// ResourceHandle identifies a resource. The zero value is never issued.
type ResourceHandle slot.Key

func (h ResourceHandle) String() string {
	return "res:" + slot.Key(h).String()
}

// UnitHandle identifies a unit. The zero value is never issued.
type UnitHandle slot.Key

func (h UnitHandle) String() string {
	return "unit:" + slot.Key(h).String()
}
