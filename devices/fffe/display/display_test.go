package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var glyph0 = []byte{0xf0, 0x90, 0x90, 0x90, 0xf0}

func TestDrawSprite(t *testing.T) {
	d := New()

	require.False(t, d.DrawSprite(0, 0, glyph0))

	for y, bits := range glyph0 {
		for x := 0; x < SpriteWidth; x++ {
			want := bits&(0x80>>x) != 0
			assert.Equal(t, want, d.Pixel(x, y), "pixel %d,%d", x, y)
		}
	}

	assert.False(t, d.Pixel(0, 5))
}

func TestDrawSpriteTwiceRestores(t *testing.T) {
	d := New()

	require.False(t, d.DrawSprite(10, 7, glyph0))
	require.True(t, d.DrawSprite(10, 7, glyph0))

	for i, lit := range d.Pixels() {
		require.False(t, lit, "pixel %d still lit", i)
	}
}

func TestCollisionOnlyOnLitOverlap(t *testing.T) {
	d := New()

	require.False(t, d.DrawSprite(0, 0, []byte{0xf0}))
	assert.False(t, d.DrawSprite(0, 0, []byte{0x0f}), "adjacent bits must not collide")
	assert.True(t, d.DrawSprite(0, 0, []byte{0x01}))
	assert.False(t, d.Pixel(7, 0))
	assert.True(t, d.Pixel(0, 0))
}

func TestDrawSpriteWraps(t *testing.T) {
	d := New()

	d.DrawSprite(62, 31, []byte{0xff, 0x81})

	assert.True(t, d.Pixel(62, 31))
	assert.True(t, d.Pixel(63, 31))
	assert.True(t, d.Pixel(0, 31))
	assert.True(t, d.Pixel(5, 31))
	assert.False(t, d.Pixel(6, 31))

	assert.True(t, d.Pixel(62, 0))
	assert.False(t, d.Pixel(63, 0))
	assert.True(t, d.Pixel(5, 0))
}

func TestDrawSpriteLargeCoordinates(t *testing.T) {
	d := New()
	d.DrawSprite(64+3, 32+2, []byte{0x80})
	assert.True(t, d.Pixel(3, 2))
}

func TestDrawSpriteHeightLimit(t *testing.T) {
	d := New()

	rows := make([]byte, 20)
	for i := range rows {
		rows[i] = 0x80
	}

	d.DrawSprite(0, 0, rows)
	assert.True(t, d.Pixel(0, MaxSpriteHeight-1))
	assert.False(t, d.Pixel(0, MaxSpriteHeight))
}

func TestClear(t *testing.T) {
	d := New()
	d.DrawSprite(0, 0, glyph0)
	d.Changed()

	d.Clear()
	assert.True(t, d.Changed())
	assert.False(t, d.Changed())

	for _, lit := range d.Pixels() {
		require.False(t, lit)
	}
}

func TestSetPixelWraps(t *testing.T) {
	d := New()
	d.SetPixel(-1, -1, true)
	assert.True(t, d.Pixel(Width-1, Height-1))
}

func TestRGBA(t *testing.T) {
	d := New()
	d.SetPixel(1, 0, true)

	on := [4]byte{255, 255, 255, 255}
	off := [4]byte{0, 0, 0, 255}

	p := d.RGBA(on, off)
	require.Len(t, p, PixelCount*4)
	assert.Equal(t, off[:], p[0:4])
	assert.Equal(t, on[:], p[4:8])
}
