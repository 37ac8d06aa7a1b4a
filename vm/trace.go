package vm

import (
	"fmt"
	"strings"

	"github.com/hexaflex/chip8/devices/fffe/cpu"
)

// TraceLine formats one line of instruction trace output for the given
// instruction and the machine state before it executes:
//
//	PC:0200 OP:6A02 LD VA, 02        V:00 00 .. 00 I:000 SP:0 DT:00 ST:00 CYC:1
func TraceLine(instr *cpu.Instruction, s cpu.State) string {
	var sb strings.Builder
	sb.Grow(128)

	fmt.Fprintf(&sb, "PC:%04X OP:%04X %-16s V:", instr.IP, instr.Word, instr.String())
	for n, v := range s.V {
		if n > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	fmt.Fprintf(&sb, " I:%03X SP:%X DT:%02X ST:%02X CYC:%d", s.I, s.SP, s.DT, s.ST, s.InstructionCycles)
	return sb.String()
}

// Trace returns the state snapshot and trace line for the instruction
// being executed. It is meant to be called from a cpu.TraceFunc.
func (e *Emulator) Trace(instr *cpu.Instruction) string {
	return TraceLine(instr, e.cpu.State())
}
