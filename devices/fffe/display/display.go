// Package display implements the 64x32 monochrome framebuffer.
package display

import (
	"github.com/hexaflex/chip8/devices"
)

// Various display and sprite properties.
const (
	Width           = 64             // Display width in pixels.
	Height          = 32             // Display height in pixels.
	PixelCount      = Width * Height // Number of pixels in the framebuffer.
	SpriteWidth     = 8              // Width of a sprite row in pixels.
	MaxSpriteHeight = 15             // Maximum number of rows in a sprite.
)

// Display holds the framebuffer. Pixels are stored row-major and
// addressed modulo Width and Height.
type Display struct {
	pixels [PixelCount]bool
	dirty  bool
}

var _ devices.Device = &Display{}
var _ devices.Display = &Display{}

// New creates a new, blank display.
func New() *Display {
	return &Display{dirty: true}
}

// ID returns the device identifier.
func (d *Display) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0002)
}

// Startup blanks the display.
func (d *Display) Startup() error {
	d.Clear()
	return nil
}

// Shutdown clears up device resources.
func (d *Display) Shutdown() error {
	return nil
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.pixels = [PixelCount]bool{}
	d.dirty = true
}

// Pixel returns the state of the pixel at x, y.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[at(x, y)]
}

// SetPixel sets the state of the pixel at x, y.
func (d *Display) SetPixel(x, y int, on bool) {
	d.pixels[at(x, y)] = on
	d.dirty = true
}

// DrawSprite XORs up to MaxSpriteHeight rows onto the framebuffer, with the
// most significant bit of each row as its leftmost pixel. Coordinates wrap
// around the display edges. Returns true if a lit sprite bit landed on a
// pixel which was already lit.
func (d *Display) DrawSprite(x, y int, rows []byte) bool {
	if len(rows) > MaxSpriteHeight {
		rows = rows[:MaxSpriteHeight]
	}

	var collision bool

	for row, bits := range rows {
		for col := 0; col < SpriteWidth; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			i := at(x+col, y+row)
			if d.pixels[i] {
				collision = true
			}
			d.pixels[i] = !d.pixels[i]
		}
	}

	d.dirty = true
	return collision
}

// Changed returns true if the framebuffer was modified since the last call.
func (d *Display) Changed() bool {
	v := d.dirty
	d.dirty = false
	return v
}

// Pixels returns a copy of the framebuffer in row-major order.
func (d *Display) Pixels() []bool {
	out := make([]bool, PixelCount)
	copy(out, d.pixels[:])
	return out
}

// RGBA expands the framebuffer into 4 bytes per pixel, using the given
// colors for lit and unlit pixels.
func (d *Display) RGBA(on, off [4]byte) []byte {
	out := make([]byte, 0, PixelCount*4)
	for _, lit := range d.pixels {
		if lit {
			out = append(out, on[:]...)
		} else {
			out = append(out, off[:]...)
		}
	}
	return out
}

// at returns the framebuffer index for x, y with wrap-around addressing.
func at(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}

	y %= Height
	if y < 0 {
		y += Height
	}

	return y*Width + x
}
