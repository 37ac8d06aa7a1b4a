package console

import (
	"log"
	"time"

	"github.com/hexaflex/chip8/devices/fffe/keypad"
)

// DefaultHold is how long a key stays down after its last byte.
// Terminals report presses and auto-repeat but no releases.
const DefaultHold = 150 * time.Millisecond

// Control bytes recognised in raw mode.
const (
	ctrlC  = 0x03
	ctrlR  = 0x12
	escape = 0x1b
)

// Action is a frontend command decoded from the input stream.
type Action int

// Known actions.
const (
	None Action = iota
	Quit
	Reset
)

// Sink receives pad key transitions. The emulator implements it.
type Sink interface {
	SetKey(key int, pressed bool) error
}

// Input turns a stream of raw terminal bytes into pad key presses
// and releases.
type Input struct {
	sink  Sink
	hold  time.Duration
	until [keypad.KeyCount]time.Time
	down  [keypad.KeyCount]bool
}

// NewInput creates an input forwarding into sink.
func NewInput(sink Sink, hold time.Duration) *Input {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{sink: sink, hold: hold}
}

// Feed processes one byte read at the given time.
func (in *Input) Feed(b byte, now time.Time) Action {
	switch b {
	case ctrlC, escape:
		return Quit
	case ctrlR:
		return Reset
	}

	key, ok := keypad.KeyForRune(rune(b))
	if !ok {
		return None
	}

	in.until[key] = now.Add(in.hold)
	if !in.down[key] {
		in.down[key] = true
		in.publish(key)
	}
	return None
}

// Update releases keys whose hold time has expired.
func (in *Input) Update(now time.Time) {
	for key := range in.down {
		if in.down[key] && !now.Before(in.until[key]) {
			in.down[key] = false
			in.publish(key)
		}
	}
}

// ReleaseAll lifts every held key.
func (in *Input) ReleaseAll() {
	for key := range in.down {
		if in.down[key] {
			in.down[key] = false
			in.publish(key)
		}
	}
}

func (in *Input) publish(key int) {
	if err := in.sink.SetKey(key, in.down[key]); err != nil {
		log.Println("console:", err)
	}
}
