// Package console implements a terminal frontend: raw keyboard input
// and text rendering of the display.
package console

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/hexaflex/chip8/devices"
)

// Device owns the terminal for the lifetime of the frontend.
type Device struct {
	in       *os.File
	input    *Input
	bytes    chan byte
	oldState *term.State
}

var _ devices.Device = &Device{}

// New creates a console reading keys from in.
func New(in *os.File, sink Sink, hold time.Duration) *Device {
	return &Device{
		in:    in,
		input: NewInput(sink, hold),
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0013)
}

// Startup puts the terminal into raw mode and starts reading keys.
func (d *Device) Startup() error {
	fd := int(d.in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("input is not a terminal")
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrapf(err, "failed to set raw mode")
	}

	d.oldState = state
	d.bytes = make(chan byte, 64)
	go reader(d.in, d.bytes)
	return nil
}

// Shutdown restores the terminal.
func (d *Device) Shutdown() error {
	d.input.ReleaseAll()

	if d.oldState == nil {
		return nil
	}

	err := term.Restore(int(d.in.Fd()), d.oldState)
	d.oldState = nil
	return errors.Wrapf(err, "failed to restore terminal")
}

// Poll drains pending input and expires held keys. It returns the
// first frontend action seen, or Quit if one was seen at all.
func (d *Device) Poll(now time.Time) Action {
	action := None

	for {
		select {
		case b, ok := <-d.bytes:
			if !ok {
				d.bytes = nil
				return Quit
			}
			if a := d.input.Feed(b, now); a == Quit || action == None {
				action = a
			}
		default:
			d.input.Update(now)
			return action
		}
	}
}
