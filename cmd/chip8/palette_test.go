package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hexaflex/chip8/devices/fffe/screen"
)

func TestPalettes(t *testing.T) {
	c := &Config{Foreground: screen.White, Background: screen.Black}

	p := palettes(c)
	assert.Equal(t, palette{screen.White, screen.Black}, p[0])
	assert.Equal(t, palette{screen.Black, screen.White}, p[1])
	assert.Len(t, p, 4)
}

func TestShiftTone(t *testing.T) {
	assert.InDelta(t, 880, shiftTone(440, 12), 1e-9)
	assert.InDelta(t, 220, shiftTone(440, -12), 1e-9)
	assert.InDelta(t, 466.16, shiftTone(440, 1), 0.01)
	assert.Equal(t, float64(maxTone), shiftTone(3000, 12))
	assert.Equal(t, float64(minTone), shiftTone(60, -12))
}
