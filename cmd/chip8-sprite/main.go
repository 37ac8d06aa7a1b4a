package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hexaflex/chip8/devices/fffe/display"
)

func main() {
	config := parseArgs()
	img := loadImage(config)

	out, close := makeWriter(config)
	defer close()

	sprites := slice(img, config.Height)

	var err error
	if config.Raw {
		err = writeRaw(out, sprites)
	} else {
		err = writeListing(out, sprites)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// slice cuts the image into sprites of 8 pixels by height rows, left to
// right and top to bottom. Pixels with a non-zero red channel are lit.
// The leftmost pixel of a row is its most significant bit.
func slice(img image.Image, height int) [][]byte {
	r := img.Bounds()
	w := r.Dx() / display.SpriteWidth
	h := r.Dy() / height

	sprites := make([][]byte, 0, w*h)

	for y := 0; y < h; y++ {
		sy := r.Min.Y + y*height

		for x := 0; x < w; x++ {
			sx := r.Min.X + x*display.SpriteWidth
			sprite := make([]byte, height)

			for py := 0; py < height; py++ {
				for px := 0; px < display.SpriteWidth; px++ {
					red, _, _, _ := img.At(sx+px, sy+py).RGBA()
					if red != 0 {
						sprite[py] |= 0x80 >> uint(px)
					}
				}
			}

			sprites = append(sprites, sprite)
		}
	}

	return sprites
}

// writeListing writes the sprites as commented byte rows.
func writeListing(out io.Writer, sprites [][]byte) error {
	if _, err := fmt.Fprintf(out, "; %d sprites\n", len(sprites)); err != nil {
		return err
	}

	for n, sprite := range sprites {
		if _, err := fmt.Fprintf(out, "\n; sprite %d\n", n); err != nil {
			return err
		}

		for _, row := range sprite {
			if _, err := fmt.Fprintf(out, "db 0x%02X ; %s\n", row, pattern(row)); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeRaw writes the sprite bytes back to back.
func writeRaw(out io.Writer, sprites [][]byte) error {
	for _, sprite := range sprites {
		if _, err := out.Write(sprite); err != nil {
			return err
		}
	}
	return nil
}

// pattern renders a sprite row as '#' and '.' characters.
func pattern(row byte) string {
	var p [display.SpriteWidth]byte
	for i := range p {
		if row&(0x80>>uint(i)) != 0 {
			p[i] = '#'
		} else {
			p[i] = '.'
		}
	}
	return string(p[:])
}

// loadImage loads an image from the input file.
func loadImage(c *Config) image.Image {
	fd, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := img.Bounds()
	if r.Dx() < display.SpriteWidth || r.Dy() < c.Height {
		fmt.Fprintf(os.Stderr, "source image is too small; expected at least %d x %d pixels\n", display.SpriteWidth, c.Height)
		os.Exit(1)
	}

	return img
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
