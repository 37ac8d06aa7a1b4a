package console

import (
	"fmt"
	"io"
	"strings"

	tm "github.com/buger/goterm"

	"github.com/hexaflex/chip8/devices/fffe/display"
)

// Frame renders pixel states as text, packing two pixel rows into each
// line with half block characters. Lines end in CRLF so the output
// stays aligned while the terminal is in raw mode.
func Frame(pixels []bool) string {
	var sb strings.Builder
	sb.Grow((display.Width*3 + 2) * display.Height / 2)

	for y := 0; y < display.Height; y += 2 {
		for x := 0; x < display.Width; x++ {
			top := pixels[y*display.Width+x]
			bottom := y+1 < display.Height && pixels[(y+1)*display.Width+x]

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	return sb.String()
}

// Draw redraws the terminal with the given pixels and status line.
func Draw(pixels []bool, status string) {
	tm.Clear()
	tm.MoveCursor(1, 1)
	fmt.Fprint(tm.Screen, Frame(pixels))
	fmt.Fprint(tm.Screen, status, "\r\n")
	tm.Flush()
}

// reader copies bytes from r into ch until r fails.
func reader(r io.Reader, ch chan<- byte) {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			ch <- b
		}
		if err != nil {
			close(ch)
			return
		}
	}
}
