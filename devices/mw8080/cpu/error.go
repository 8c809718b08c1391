package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnsupportedOpcode is the cause of errors for opcodes outside the instruction set.
var ErrUnsupportedOpcode = errors.New("unsupported opcode")

// Error defines a runtime error.
type Error struct {
	*Instruction
	Err error // Underlying cause.
	Msg string
}

// NewError creates a new, formatted error message for the given instruction.
// The instruction is copied, so the error remains valid after further steps.
func NewError(instr *Instruction, err error, f string, argv ...interface{}) *Error {
	cp := *instr
	return &Error{
		Instruction: &cp,
		Err:         err,
		Msg:         fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %s", e.IP, e.Msg)
}

// Cause returns the underlying cause, for use with github.com/pkg/errors.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }
