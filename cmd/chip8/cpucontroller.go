package main

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/vm"
)

// maxBacklog bounds how many timer cycles are caught up in one Advance
// call after the host stalled.
const maxBacklog = 4

// CPUController paces an emulator against real time.
type CPUController struct {
	emu     *vm.Emulator
	period  time.Duration
	backlog time.Duration
	start   time.Time
	cycles  uint64
	running bool
}

// NewCPUController creates a controller running one timer cycle
// per the given period of real time.
func NewCPUController(period time.Duration) *CPUController {
	return &CPUController{period: period}
}

// Load replaces the running emulator. The controller adopts its timer rate.
func (c *CPUController) Load(emu *vm.Emulator) {
	c.emu = emu
	c.period = time.Second / time.Duration(emu.TimerRate())
	c.backlog = 0
	c.setRunning(c.running)
}

// Emulator returns the current emulator, if any.
func (c *CPUController) Emulator() *vm.Emulator {
	return c.emu
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.running
}

// Frequency returns the measured instruction rate in herz.
func (c *CPUController) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.cycles) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *CPUController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setRunning(false)
}

// Advance runs as many timer cycles as fit in the real time elapsed
// since the previous call. Execution stops on the first error.
func (c *CPUController) Advance(elapsed time.Duration) error {
	if !c.running || c.emu == nil {
		return nil
	}

	c.backlog += elapsed
	if c.backlog > maxBacklog*c.period {
		c.backlog = maxBacklog * c.period
	}

	for c.backlog >= c.period {
		c.backlog -= c.period

		before := c.emu.InstructionCycles()
		err := c.emu.CycleUntilTimer()
		c.cycles += c.emu.InstructionCycles() - before

		if err != nil {
			c.Stop()
			return err
		}
	}

	return nil
}

// Step executes a single instruction.
func (c *CPUController) Step() error {
	if c.emu == nil {
		return errors.New("no program loaded")
	}

	err := c.emu.CycleUntilCPU()
	if err != nil {
		c.Stop()
	}
	return err
}

// Reset restarts the loaded program.
func (c *CPUController) Reset() error {
	if c.emu == nil {
		return nil
	}

	c.backlog = 0
	c.setRunning(c.running)
	return c.emu.Reset()
}

// SetKey forwards key state to the current emulator.
func (c *CPUController) SetKey(key int, pressed bool) error {
	if c.emu == nil {
		return nil
	}
	return c.emu.SetKey(key, pressed)
}

// setRunning determines if the CPU is running or is paused.
func (c *CPUController) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycles = 0
}
