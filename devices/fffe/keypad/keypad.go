// Package keypad implements the 16-key hexadecimal input pad.
package keypad

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// KeyCount is the number of keys on the pad.
const KeyCount = 16

// ErrInvalidKey is returned for key indices outside 0-F.
var ErrInvalidKey = errors.New("invalid key")

// Keypad holds the pressed state of each key. It is written by the host
// and only read by the CPU.
type Keypad struct {
	state [KeyCount]bool
}

var _ devices.Device = &Keypad{}
var _ devices.Keypad = &Keypad{}

// New creates a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// ID returns the device id.
func (k *Keypad) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0004)
}

// Startup releases all keys.
func (k *Keypad) Startup() error {
	k.state = [KeyCount]bool{}
	return nil
}

// Shutdown clears up device resources.
func (k *Keypad) Shutdown() error {
	return nil
}

// Set marks the given key as pressed or released.
func (k *Keypad) Set(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return errors.Wrapf(ErrInvalidKey, "%d", key)
	}
	k.state[key] = pressed
	return nil
}

// Pressed returns true if the given key is held down.
// Out of range keys are never pressed.
func (k *Keypad) Pressed(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return k.state[key]
}

// FirstPressed returns the lowest-indexed key which is held down.
func (k *Keypad) FirstPressed() (int, bool) {
	for key, pressed := range k.state {
		if pressed {
			return key, true
		}
	}
	return 0, false
}

// State returns a copy of all key states.
func (k *Keypad) State() [KeyCount]bool {
	return k.state
}

// SetState replaces all key states.
func (k *Keypad) SetState(state [KeyCount]bool) {
	k.state = state
}
