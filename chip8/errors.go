package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a CALL is executed with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a RET is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrROMTooLarge is returned when a ROM does not fit into program memory.
	ErrROMTooLarge = errors.New("rom too large")
)

// UnknownOpcodeError is returned when an opcode matches no known instruction.
type UnknownOpcodeError struct {
	Opcode  uint16
	Address uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at address %03X", e.Opcode, e.Address)
}

// MemoryOutOfBoundsError is returned when an instruction would access memory
// beyond MaxAddress. Fetch is set if the opcode fetch itself failed, in that
// case the program counter has run off the end of memory.
type MemoryOutOfBoundsError struct {
	Address int
	Fetch   bool
}

func (e *MemoryOutOfBoundsError) Error() string {
	return fmt.Sprintf("memory access out of bounds at address %04X", e.Address)
}
