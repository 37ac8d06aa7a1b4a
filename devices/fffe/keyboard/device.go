// Package keyboard feeds host keyboard and gamepad input into the keypad.
package keyboard

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/keypad"
)

// Sink receives pad key transitions. The emulator implements it.
type Sink interface {
	SetKey(key int, pressed bool) error
}

// Buttons maps gamepad buttons onto pad keys. The d-pad drives the
// 2/4/6/8 cluster most programs use for movement.
var Buttons = map[glfw.GamepadButton]int{
	glfw.ButtonDpadUp:    0x2,
	glfw.ButtonDpadLeft:  0x4,
	glfw.ButtonDpadRight: 0x6,
	glfw.ButtonDpadDown:  0x8,
	glfw.ButtonA:         0x5,
	glfw.ButtonB:         0x6,
	glfw.ButtonX:         0x4,
	glfw.ButtonY:         0xc,
	glfw.ButtonStart:     0xf,
	glfw.ButtonBack:      0x0,
}

// Device tracks which pad keys are held through either input source.
// All methods must be called from the glfw main thread.
type Device struct {
	sink     Sink
	joy      glfw.Joystick
	keys     [keypad.KeyCount]bool
	buttons  [keypad.KeyCount]bool
	joyReady bool
}

var _ devices.Device = &Device{}

// New creates a new device forwarding into sink.
func New(sink Sink) *Device {
	return &Device{sink: sink}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0011)
}

// Startup detects any connected gamepad.
func (d *Device) Startup() error {
	d.keys = [keypad.KeyCount]bool{}
	d.buttons = [keypad.KeyCount]bool{}

	glfw.SetJoystickCallback(d.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	return nil
}

// HandleKey processes a glfw key event. It returns false if the key is
// not bound to the pad.
func (d *Device) HandleKey(key glfw.Key, action glfw.Action) bool {
	if action == glfw.Repeat {
		_, ok := KeyFor(key)
		return ok
	}

	pad, ok := KeyFor(key)
	if !ok {
		return false
	}

	d.keys[pad] = action == glfw.Press
	d.publish(pad)
	return true
}

// Update polls the gamepad.
func (d *Device) Update() {
	if !d.joyReady {
		return
	}

	state := d.joy.GetGamepadState()
	if state == nil {
		return
	}

	var held [keypad.KeyCount]bool
	for btn, pad := range Buttons {
		if state.Buttons[btn] == glfw.Press {
			held[pad] = true
		}
	}

	d.setButtons(held)
}

func (d *Device) setButtons(held [keypad.KeyCount]bool) {
	for pad := range held {
		if held[pad] != d.buttons[pad] {
			d.buttons[pad] = held[pad]
			d.publish(pad)
		}
	}
}

// publish forwards the combined state of one pad key.
func (d *Device) publish(pad int) {
	if err := d.sink.SetKey(pad, d.keys[pad] || d.buttons[pad]); err != nil {
		log.Println(d.ID(), err)
	}
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	d.joyReady = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy

	if d.joyReady {
		log.Println(d.ID(), "gamepad connected:", joy.GetGamepadName())
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}

	d.setButtons([keypad.KeyCount]bool{})
}

// KeyFor returns the pad key bound to a glfw key.
func KeyFor(key glfw.Key) (int, bool) {
	// glfw key codes for digits and letters are their ASCII values.
	if (key >= glfw.Key0 && key <= glfw.Key9) || (key >= glfw.KeyA && key <= glfw.KeyZ) {
		return keypad.KeyForRune(rune(key))
	}
	return 0, false
}
