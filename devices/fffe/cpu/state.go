package cpu

import "github.com/hexaflex/chip8/arch"

// State is a snapshot of the cpu registers.
type State struct {
	V                 [arch.RegisterCount]byte `json:"v"`
	I                 uint16                   `json:"i"`
	PC                uint16                   `json:"pc"`
	Stack             [arch.StackDepth]uint16  `json:"stack"`
	SP                int                      `json:"sp"`
	DT                byte                     `json:"dt"`
	ST                byte                     `json:"st"`
	InstructionCycles uint64                   `json:"instructionCycles"`
	TimerCycles       uint64                   `json:"timerCycles"`
	Halted            bool                     `json:"halted"`
}

// State returns a snapshot of the cpu registers.
func (c *CPU) State() State {
	return State{
		V:                 c.v,
		I:                 c.i,
		PC:                c.pc,
		Stack:             c.stack,
		SP:                c.sp,
		DT:                c.dt,
		ST:                c.st,
		InstructionCycles: c.clock.Cycles(),
		TimerCycles:       c.timer.Cycles(),
		Halted:            c.fault != nil,
	}
}

// SetState loads the given registers and cycle counters and clears
// any fault. The Halted field is ignored.
func (c *CPU) SetState(s State) {
	c.v = s.V
	c.i = s.I
	c.pc = s.PC
	c.stack = s.Stack
	c.sp = s.SP
	c.dt = s.DT
	c.st = s.ST
	c.clock.SetCycles(s.InstructionCycles)
	c.timer.SetCycles(s.TimerCycles)
	c.fault = nil
}
