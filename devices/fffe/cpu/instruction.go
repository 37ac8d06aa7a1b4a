package cpu

import (
	"fmt"

	"github.com/hexaflex/chip8/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP      int     // Instruction address.
	Word    uint16  // Raw instruction word.
	Opcode  int     // Instruction opcode, or arch.Unknown.
	Nibbles [4]byte // The word's nibbles, most significant first.
	NNN     uint16  // Low 12 bits: an address.
	NN      byte    // Low 8 bits: a byte immediate.
	N       byte    // Low 4 bits: a nibble immediate or sprite height.
	X       int     // Bits 8-11: first register index.
	Y       int     // Bits 4-7: second register index.
}

// Decode decodes the given instruction word. Every word decodes;
// words matching no instruction yield an arch.Unknown opcode.
func Decode(word uint16) Instruction {
	return Instruction{
		Word:   word,
		Opcode: arch.Identify(word),
		Nibbles: [4]byte{
			byte(word >> 12),
			byte(word>>8) & 0xf,
			byte(word>>4) & 0xf,
			byte(word) & 0xf,
		},
		NNN: word & 0xfff,
		NN:  byte(word),
		N:   byte(word) & 0xf,
		X:   int(word>>8) & 0xf,
		Y:   int(word>>4) & 0xf,
	}
}

// String returns the disassembled form of the instruction.
func (i *Instruction) String() string {
	name, ok := arch.Name(i.Opcode)
	if !ok {
		return "???"
	}

	vx := arch.RegisterName(i.X)
	vy := arch.RegisterName(i.Y)

	switch i.Opcode {
	case arch.CLS, arch.RET:
		return name
	case arch.JMP, arch.CALL:
		return fmt.Sprintf("%s %03X", name, i.NNN)
	case arch.JMPO:
		return fmt.Sprintf("%s V0, %03X", name, i.NNN)
	case arch.SEI, arch.SNEI, arch.LDI, arch.ADDI, arch.RND:
		return fmt.Sprintf("%s %s, %02X", name, vx, i.NN)
	case arch.SE, arch.SNE, arch.LD, arch.OR, arch.AND, arch.XOR,
		arch.ADD, arch.SUB, arch.SHR, arch.SUBN, arch.SHL:
		return fmt.Sprintf("%s %s, %s", name, vx, vy)
	case arch.LDA:
		return fmt.Sprintf("%s I, %03X", name, i.NNN)
	case arch.DRW:
		return fmt.Sprintf("%s %s, %s, %X", name, vx, vy, i.N)
	case arch.SKP, arch.SKNP, arch.BCD:
		return fmt.Sprintf("%s %s", name, vx)
	case arch.LDVDT:
		return fmt.Sprintf("%s %s, DT", name, vx)
	case arch.LDKEY:
		return fmt.Sprintf("%s %s, KEY", name, vx)
	case arch.LDDTV:
		return fmt.Sprintf("%s DT, %s", name, vx)
	case arch.LDSTV:
		return fmt.Sprintf("%s ST, %s", name, vx)
	case arch.ADDA:
		return fmt.Sprintf("%s I, %s", name, vx)
	case arch.LDFONT:
		return fmt.Sprintf("%s I, FONT(%s)", name, vx)
	case arch.STORE:
		return fmt.Sprintf("%s [I], %s", name, vx)
	case arch.LOAD:
		return fmt.Sprintf("%s %s, [I]", name, vx)
	}

	return name
}
