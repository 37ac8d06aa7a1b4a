package keyboard

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"github.com/hexaflex/chip8/devices/fffe/keypad"
)

type recorder struct {
	pad    *keypad.Keypad
	events int
}

func (r *recorder) SetKey(key int, pressed bool) error {
	r.events++
	return r.pad.Set(key, pressed)
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want int
		ok   bool
	}{
		{glfw.Key1, 0x1, true},
		{glfw.Key4, 0xc, true},
		{glfw.KeyQ, 0x4, true},
		{glfw.KeyR, 0xd, true},
		{glfw.KeyF, 0xe, true},
		{glfw.KeyX, 0x0, true},
		{glfw.KeyV, 0xf, true},
		{glfw.Key5, 0, false},
		{glfw.KeyP, 0, false},
		{glfw.KeyEscape, 0, false},
		{glfw.KeyF5, 0, false},
	}

	for _, tt := range tests {
		got, ok := KeyFor(tt.key)
		assert.Equal(t, tt.ok, ok, "%v", tt.key)
		if tt.ok {
			assert.Equal(t, tt.want, got, "%v", tt.key)
		}
	}
}

func TestHandleKey(t *testing.T) {
	r := &recorder{pad: keypad.New()}
	d := New(r)

	assert.True(t, d.HandleKey(glfw.KeyW, glfw.Press))
	assert.True(t, r.pad.Pressed(0x5))

	assert.True(t, d.HandleKey(glfw.KeyW, glfw.Repeat))
	assert.Equal(t, 1, r.events)

	assert.True(t, d.HandleKey(glfw.KeyW, glfw.Release))
	assert.False(t, r.pad.Pressed(0x5))

	assert.False(t, d.HandleKey(glfw.KeyEscape, glfw.Press))
	assert.Equal(t, 2, r.events)
}

func TestKeyboardAndGamepadCombine(t *testing.T) {
	r := &recorder{pad: keypad.New()}
	d := New(r)

	// E and the right d-pad button both map to pad key 6.
	d.HandleKey(glfw.KeyE, glfw.Press)

	var held [keypad.KeyCount]bool
	held[0x6] = true
	d.setButtons(held)

	d.HandleKey(glfw.KeyE, glfw.Release)
	assert.True(t, r.pad.Pressed(0x6), "gamepad still holds the key")

	d.setButtons([keypad.KeyCount]bool{})
	assert.False(t, r.pad.Pressed(0x6))
}

func TestSetButtonsOnlyPublishesChanges(t *testing.T) {
	r := &recorder{pad: keypad.New()}
	d := New(r)

	var held [keypad.KeyCount]bool
	held[0x2] = true
	d.setButtons(held)
	d.setButtons(held)

	assert.Equal(t, 1, r.events)
	assert.True(t, r.pad.Pressed(0x2))
}
