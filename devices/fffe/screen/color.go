package screen

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color is an RGBA8 color.
type Color [4]byte

// Default pixel colors.
var (
	White = Color{0xff, 0xff, 0xff, 0xff}
	Black = Color{0x00, 0x00, 0x00, 0xff}
)

// ParseColor reads a color in the form "rrggbb" or "#rrggbb".
// The alpha channel is always opaque.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, errors.Errorf("invalid color %q: want rrggbb", s)
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid color %q", s)
	}

	return Color{byte(n >> 16), byte(n >> 8), byte(n), 0xff}, nil
}

// String returns the color as "rrggbb".
func (c Color) String() string {
	return strings.ToLower(strconv.FormatUint(uint64(c[0])<<16|uint64(c[1])<<8|uint64(c[2])|1<<24, 16)[1:])
}

// Vec4 returns the color as normalized floats.
func (c Color) Vec4() [4]float32 {
	return [4]float32{
		float32(c[0]) / 255,
		float32(c[1]) / 255,
		float32(c[2]) / 255,
		float32(c[3]) / 255,
	}
}
