package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known error conditions.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnknownOpcode  = errors.New("unknown opcode")
)

// Error defines a runtime error. It halts the CPU.
type Error struct {
	Instruction
	Err error
}

// NewError creates a new error for the given instruction.
func NewError(instr *Instruction, err error) *Error {
	return &Error{
		Instruction: *instr,
		Err:         err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%03x %04x: %v", e.IP, e.Word, e.Err)
}

// Cause returns the underlying error.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }
