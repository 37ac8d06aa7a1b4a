// Package vm ties the CHIP-8 components into a runnable machine.
package vm

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/devices/fffe/cpu"
	"github.com/hexaflex/chip8/devices/fffe/display"
	"github.com/hexaflex/chip8/devices/fffe/keypad"
	"github.com/hexaflex/chip8/devices/fffe/memory"
)

// Default framebuffer colors.
var (
	ColorOn  = [4]byte{0xff, 0xff, 0xff, 0xff}
	ColorOff = [4]byte{0x00, 0x00, 0x00, 0xff}
)

// Emulator owns one instance of every machine component.
// It is not safe for concurrent use.
type Emulator struct {
	cpu     *cpu.CPU
	memory  *memory.Memory
	display *display.Display
	keypad  *keypad.Keypad
	clock   *clock.Clock
	devices devices.Map
}

// New creates an emulator with the given program loaded.
// A nil config selects DefaultConfig.
func New(rom []byte, config *Config) (*Emulator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.CPURate < 1 || config.TimerRate < 1 {
		return nil, errors.Errorf("invalid clock rates %d/%d", config.CPURate, config.TimerRate)
	}

	e := &Emulator{
		cpu:     cpu.New(config.CPURate, config.TimerRate, config.Trace, config.Random),
		memory:  memory.New(),
		display: display.New(),
		keypad:  keypad.New(),
		clock:   clock.New(config.CPURate),
	}

	if err := e.memory.Load(rom); err != nil {
		return nil, errors.Wrap(err, "load program")
	}

	e.devices.Connect(e.cpu)
	e.devices.Connect(e.memory)
	e.devices.Connect(e.display)
	e.devices.Connect(e.keypad)
	return e, nil
}

// Reset returns every component to its power-on state, with the
// program image restored.
func (e *Emulator) Reset() error {
	e.clock.Reset()
	return e.devices.Startup()
}

// Cycle advances the machine by one clock tick.
func (e *Emulator) Cycle() error {
	err := e.cpu.Tick(e.clock.Now(), e.memory, e.display, e.keypad)
	if err != nil {
		return err
	}

	e.clock.Tick()
	return nil
}

// CycleUntilTimer cycles until the next timer cycle has elapsed.
func (e *Emulator) CycleUntilTimer() error {
	cycle := e.cpu.TimerCycles()
	for cycle == e.cpu.TimerCycles() {
		if err := e.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// CycleUntilCPU cycles until the next instruction cycle has elapsed.
func (e *Emulator) CycleUntilCPU() error {
	cycle := e.cpu.InstructionCycles()
	for cycle == e.cpu.InstructionCycles() {
		if err := e.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// SetKey marks pad key 0-F as pressed or released.
func (e *Emulator) SetKey(key int, pressed bool) error {
	return e.keypad.Set(key, pressed)
}

// Beep returns true while the buzzer should sound.
func (e *Emulator) Beep() bool {
	return e.cpu.Beep()
}

// Framebuffer returns the display contents as row-major pixel states.
func (e *Emulator) Framebuffer() []bool {
	return e.display.Pixels()
}

// FramebufferRGBA returns the display contents as RGBA bytes,
// using the given colors for lit and unlit pixels.
func (e *Emulator) FramebufferRGBA(on, off [4]byte) []byte {
	return e.display.RGBA(on, off)
}

// Display returns the display device.
func (e *Emulator) Display() *display.Display {
	return e.display
}

// Disassemble decodes the instruction at the given address.
func (e *Emulator) Disassemble(addr int) (cpu.Instruction, error) {
	word, err := e.memory.Fetch(addr)
	if err != nil {
		return cpu.Instruction{}, err
	}

	instr := cpu.Decode(word)
	instr.IP = addr
	return instr, nil
}

// InstructionCycles returns the number of instruction cycles elapsed
// since the last reset.
func (e *Emulator) InstructionCycles() uint64 {
	return e.cpu.InstructionCycles()
}

// Halted returns the error which stopped the cpu, or nil.
func (e *Emulator) Halted() error {
	return e.cpu.Fault()
}

// ClockRate returns the clock rate in herz. One Cycle call advances
// virtual time by one period of this rate.
func (e *Emulator) ClockRate() int {
	return e.clock.Rate()
}

// TimerRate returns the delay and sound timer rate in herz.
func (e *Emulator) TimerRate() int {
	_, rate := e.cpu.Rates()
	return rate
}
