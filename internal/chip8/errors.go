package chip8

import "errors"

// Errors returned by the VM. All of them are recoverable: the VM never
// mutates state for an instruction that fails, so the host can decide to
// halt, reset or continue.
var (
	// ErrInvalidOpcode is returned when an instruction pattern does not match
	// any known opcode.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrStackOverflow is returned when a subroutine call exceeds the stack
	// capacity of 16 return addresses.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when a subroutine return is executed with
	// an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrMemoryOutOfBounds is returned when a computed address falls outside
	// the 4KB address space.
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")

	// ErrRomTooLarge is returned when a ROM does not fit into the program
	// space starting at 0x200.
	ErrRomTooLarge = errors.New("rom too large")
)
