package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a CALL is executed with a full call stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a RET is executed with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrROMTooLarge is returned when a program image does not fit into the program area.
	ErrROMTooLarge = errors.New("rom too large")
)

// Fault describes a fatal condition that halted the interpreter.
type Fault struct {
	Address     uint16      // address of the faulting instruction
	Instruction Instruction // the faulting instruction
	Err         error       // the kind of fault, one of the package errors
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s at $%03X (%04X %s)", f.Err, f.Address, f.Instruction.Word, f.Instruction.Op)
}

// Unwrap returns the kind of fault so that errors.Is matches the package errors.
func (f *Fault) Unwrap() error {
	return f.Err
}
