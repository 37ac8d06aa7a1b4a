// Package arch defines the system's instruction set along with
// some related helper functions.
package arch

// Unknown is returned by Identify for words which match no known instruction.
const Unknown = -1

// Known opcodes.
const (
	CLS = iota // 00E0
	RET        // 00EE
	JMP        // 1nnn
	CALL       // 2nnn
	SEI        // 3xnn
	SNEI       // 4xnn
	SE         // 5xy0
	LDI        // 6xnn
	ADDI       // 7xnn

	LD   // 8xy0
	OR   // 8xy1
	AND  // 8xy2
	XOR  // 8xy3
	ADD  // 8xy4
	SUB  // 8xy5
	SHR  // 8xy6
	SUBN // 8xy7
	SHL  // 8xyE
	SNE  // 9xy0

	LDA  // Annn
	JMPO // Bnnn
	RND  // Cxnn
	DRW  // Dxyn

	SKP  // Ex9E
	SKNP // ExA1

	LDVDT  // Fx07
	LDKEY  // Fx0A
	LDDTV  // Fx15
	LDSTV  // Fx18
	ADDA   // Fx1E
	LDFONT // Fx29
	BCD    // Fx33
	STORE  // Fx55
	LOAD   // Fx65
)

// Identify returns the opcode for the given instruction word.
// Returns Unknown if the nibble pattern matches no instruction.
func Identify(word uint16) int {
	n := word & 0xf
	nn := word & 0xff

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00e0:
			return CLS
		case 0x00ee:
			return RET
		}
	case 0x1:
		return JMP
	case 0x2:
		return CALL
	case 0x3:
		return SEI
	case 0x4:
		return SNEI
	case 0x5:
		if n == 0 {
			return SE
		}
	case 0x6:
		return LDI
	case 0x7:
		return ADDI
	case 0x8:
		switch n {
		case 0x0:
			return LD
		case 0x1:
			return OR
		case 0x2:
			return AND
		case 0x3:
			return XOR
		case 0x4:
			return ADD
		case 0x5:
			return SUB
		case 0x6:
			return SHR
		case 0x7:
			return SUBN
		case 0xe:
			return SHL
		}
	case 0x9:
		if n == 0 {
			return SNE
		}
	case 0xa:
		return LDA
	case 0xb:
		return JMPO
	case 0xc:
		return RND
	case 0xd:
		return DRW
	case 0xe:
		switch nn {
		case 0x9e:
			return SKP
		case 0xa1:
			return SKNP
		}
	case 0xf:
		switch nn {
		case 0x07:
			return LDVDT
		case 0x0a:
			return LDKEY
		case 0x15:
			return LDDTV
		case 0x18:
			return LDSTV
		case 0x1e:
			return ADDA
		case 0x29:
			return LDFONT
		case 0x33:
			return BCD
		case 0x55:
			return STORE
		case 0x65:
			return LOAD
		}
	}

	return Unknown
}

// Name returns the mnemonic for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case CLS:
		return "CLS", true
	case RET:
		return "RET", true
	case JMP, JMPO:
		return "JMP", true
	case CALL:
		return "CALL", true
	case SEI, SE:
		return "SE", true
	case SNEI, SNE:
		return "SNE", true

	case LDI, LD, LDA, LDVDT, LDKEY, LDDTV, LDSTV, LDFONT, STORE, LOAD:
		return "LD", true
	case ADDI, ADD, ADDA:
		return "ADD", true
	case OR:
		return "OR", true
	case AND:
		return "AND", true
	case XOR:
		return "XOR", true
	case SUB:
		return "SUB", true
	case SHR:
		return "SHR", true
	case SUBN:
		return "SUBN", true
	case SHL:
		return "SHL", true

	case RND:
		return "RND", true
	case DRW:
		return "DRW", true
	case SKP:
		return "SKP", true
	case SKNP:
		return "SKNP", true
	case BCD:
		return "BCD", true
	}

	return "", false
}
