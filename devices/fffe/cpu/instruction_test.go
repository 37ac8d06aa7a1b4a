package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hexaflex/chip8/arch"
)

func TestDecode(t *testing.T) {
	i := Decode(0xd2a5)

	assert.Equal(t, uint16(0xd2a5), i.Word)
	assert.Equal(t, arch.DRW, i.Opcode)
	assert.Equal(t, [4]byte{0xd, 0x2, 0xa, 0x5}, i.Nibbles)
	assert.Equal(t, uint16(0x2a5), i.NNN)
	assert.Equal(t, byte(0xa5), i.NN)
	assert.Equal(t, byte(0x5), i.N)
	assert.Equal(t, 0x2, i.X)
	assert.Equal(t, 0xa, i.Y)
}

func TestDecodeIsTotal(t *testing.T) {
	for w := 0; w <= 0xffff; w++ {
		i := Decode(uint16(w))

		n := i.Nibbles
		got := uint16(n[0])<<12 | uint16(n[1])<<8 | uint16(n[2])<<4 | uint16(n[3])
		if got != uint16(w) {
			t.Fatalf("nibbles of %04x reassemble to %04x", w, got)
		}

		if i.NNN != uint16(w)&0xfff || int(n[1]) != i.X || int(n[2]) != i.Y {
			t.Fatalf("inconsistent fields for %04x: %+v", w, i)
		}
	}
}

func TestDisassembly(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x1200, "JMP 200"},
		{0x2abc, "CALL ABC"},
		{0x3a02, "SE VA, 02"},
		{0x4a02, "SNE VA, 02"},
		{0x5ab0, "SE VA, VB"},
		{0x6a02, "LD VA, 02"},
		{0x7a02, "ADD VA, 02"},
		{0x8ab0, "LD VA, VB"},
		{0x8ab1, "OR VA, VB"},
		{0x8ab2, "AND VA, VB"},
		{0x8ab3, "XOR VA, VB"},
		{0x8ab4, "ADD VA, VB"},
		{0x8ab5, "SUB VA, VB"},
		{0x8ab6, "SHR VA, VB"},
		{0x8ab7, "SUBN VA, VB"},
		{0x8abe, "SHL VA, VB"},
		{0x9ab0, "SNE VA, VB"},
		{0xa200, "LD I, 200"},
		{0xb200, "JMP V0, 200"},
		{0xca0f, "RND VA, 0F"},
		{0xd015, "DRW V0, V1, 5"},
		{0xe19e, "SKP V1"},
		{0xe1a1, "SKNP V1"},
		{0xf107, "LD V1, DT"},
		{0xf10a, "LD V1, KEY"},
		{0xf115, "LD DT, V1"},
		{0xf118, "LD ST, V1"},
		{0xf11e, "ADD I, V1"},
		{0xf129, "LD I, FONT(V1)"},
		{0xf133, "BCD V1"},
		{0xf155, "LD [I], V1"},
		{0xf165, "LD V1, [I]"},
		{0x0123, "???"},
		{0xffff, "???"},
	}

	for _, tt := range tests {
		i := Decode(tt.word)
		assert.Equal(t, tt.want, i.String(), "%04x", tt.word)
	}
}
