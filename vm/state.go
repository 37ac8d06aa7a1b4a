package vm

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices/fffe/cpu"
	"github.com/hexaflex/chip8/devices/fffe/keypad"
	"github.com/hexaflex/chip8/devices/fffe/memory"
)

// ErrBadState is returned when a snapshot can not be restored.
var ErrBadState = errors.New("invalid machine state")

// State is a snapshot of the whole machine.
type State struct {
	CPU    cpu.State             `json:"cpu"`
	Keypad [keypad.KeyCount]bool `json:"keypad"`
	Memory []byte                `json:"memory"`
	Ticks  uint64                `json:"ticks"`
}

// State returns a snapshot of the machine. It is consistent
// whenever no Cycle call is in progress.
func (e *Emulator) State() State {
	return State{
		CPU:    e.cpu.State(),
		Keypad: e.keypad.State(),
		Memory: e.memory.Bytes(),
		Ticks:  e.clock.Ticks(),
	}
}

// SetState restores a snapshot taken by State. The display is not part
// of a snapshot and is cleared.
func (e *Emulator) SetState(s State) error {
	if err := s.validate(); err != nil {
		return err
	}

	if err := e.memory.Restore(s.Memory); err != nil {
		return errors.Wrap(ErrBadState, err.Error())
	}

	e.cpu.SetState(s.CPU)
	e.keypad.SetState(s.Keypad)
	e.clock.SetTicks(s.Ticks)
	e.display.Clear()
	return nil
}

// SaveState writes a snapshot of the machine as JSON.
func (e *Emulator) SaveState(w io.Writer) error {
	return errors.Wrap(json.NewEncoder(w).Encode(e.State()), "save state")
}

// LoadState restores a snapshot written by SaveState.
func (e *Emulator) LoadState(r io.Reader) error {
	var s State
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return errors.Wrap(err, "load state")
	}
	return e.SetState(s)
}

func (s *State) validate() error {
	switch {
	case len(s.Memory) != memory.Size:
		return errors.Wrapf(ErrBadState, "memory holds %d bytes", len(s.Memory))
	case s.CPU.SP < 0 || s.CPU.SP > arch.StackDepth:
		return errors.Wrapf(ErrBadState, "stack pointer %d", s.CPU.SP)
	case int(s.CPU.PC) >= memory.Size:
		return errors.Wrapf(ErrBadState, "program counter %04x", s.CPU.PC)
	}
	return nil
}
