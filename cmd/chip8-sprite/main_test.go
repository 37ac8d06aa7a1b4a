package main

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyph builds an image from rows of '#' and '.' characters.
func glyph(rows ...string) image.Image {
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}

func TestSlice(t *testing.T) {
	img := glyph(
		"####....#.......",
		"#..#.....#......",
		"####......#.....",
		"................",
	)

	sprites := slice(img, 3)
	require.Len(t, sprites, 2)
	assert.Equal(t, []byte{0xf0, 0x90, 0xf0}, sprites[0])
	assert.Equal(t, []byte{0x80, 0x40, 0x20}, sprites[1])
}

func TestSliceOrder(t *testing.T) {
	img := glyph(
		"#.......",
		".#......",
	)

	sprites := slice(img, 1)
	require.Len(t, sprites, 2)
	assert.Equal(t, []byte{0x80}, sprites[0])
	assert.Equal(t, []byte{0x40}, sprites[1])
}

func TestWriteListing(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeListing(&out, [][]byte{{0xf0, 0x81}}))

	want := "; 1 sprites\n" +
		"\n; sprite 0\n" +
		"db 0xF0 ; ####....\n" +
		"db 0x81 ; #......#\n"
	assert.Equal(t, want, out.String())
}

func TestWriteRaw(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeRaw(&out, [][]byte{{1, 2}, {3}}))
	assert.Equal(t, []byte{1, 2, 3}, out.Bytes())
}
