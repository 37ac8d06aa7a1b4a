// Package beeper sounds the buzzer through the host audio device.
package beeper

import (
	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// Audio defaults.
const (
	SampleRate       = 44100
	DefaultFrequency = 440
	DefaultVolume    = 0.25
)

// Device plays a tone while the buzzer is on.
type Device struct {
	tone   *Tone
	ctx    *oto.Context
	player *oto.Player
}

var _ devices.Device = &Device{}

// New creates a beeper playing the given frequency in herz.
func New(frequency float64) *Device {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}

	return &Device{
		tone: NewTone(SampleRate, frequency, DefaultVolume),
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0012)
}

// Startup opens the audio output and starts streaming.
// Only one audio context may exist per process, so a second
// Startup keeps the existing one.
func (d *Device) Startup() error {
	if d.player != nil {
		d.tone.Gate(false)
		return nil
	}

	if d.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to open audio output")
		}
		<-ready
		d.ctx = ctx
	}

	d.player = d.ctx.NewPlayer(d.tone)
	d.player.Play()
	return nil
}

// Shutdown stops playback.
func (d *Device) Shutdown() error {
	d.tone.Gate(false)

	if d.player == nil {
		return nil
	}

	err := d.player.Close()
	d.player = nil
	return errors.Wrapf(err, "failed to close audio player")
}

// Set turns the buzzer on or off.
func (d *Device) Set(on bool) {
	d.tone.Gate(on)
}

// SetFrequency changes the buzzer pitch.
func (d *Device) SetFrequency(frequency float64) {
	d.tone.SetFrequency(frequency)
}

// Frequency returns the buzzer pitch in herz.
func (d *Device) Frequency() float64 {
	return d.tone.Frequency()
}
