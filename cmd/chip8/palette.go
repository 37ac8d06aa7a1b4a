package main

import (
	"math"

	"github.com/hexaflex/chip8/devices/fffe/screen"
)

// palette is a pair of lit and unlit pixel colors.
type palette struct {
	on, off screen.Color
}

// palettes returns the palettes cycled through at runtime. The
// configured colors come first.
func palettes(c *Config) []palette {
	return []palette{
		{c.Foreground, c.Background},
		{c.Background, c.Foreground},
		{screen.Color{0x33, 0xff, 0x66, 0xff}, screen.Color{0x0a, 0x1a, 0x0f, 0xff}},
		{screen.Color{0xff, 0xb0, 0x00, 0xff}, screen.Color{0x1a, 0x10, 0x00, 0xff}},
	}
}

// Tone limits in herz.
const (
	minTone = 55
	maxTone = 3520
)

// shiftTone moves frequency by the given number of semitones,
// clamped to the audible range the buzzer supports.
func shiftTone(frequency float64, semitones int) float64 {
	f := frequency * math.Pow(2, float64(semitones)/12)
	return math.Max(minTone, math.Min(maxTone, f))
}
