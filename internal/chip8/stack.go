package chip8

import "fmt"

// StackDepth is the maximum number of nested subroutine calls.
const StackDepth = 16

// Stack is the bounded LIFO of 16-bit return addresses used by the call and
// return opcodes. Overflow and underflow are reported errors, the stack never
// silently truncates.
type Stack struct {
	data [StackDepth]uint16
	sp   int
}

// Push stores a return address on the stack.
func (s *Stack) Push(addr uint16) error {
	if s.sp >= StackDepth {
		return fmt.Errorf("pushing %04X onto a full stack: %w", addr, ErrStackOverflow)
	}
	s.data[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, fmt.Errorf("popping from an empty stack: %w", ErrStackUnderflow)
	}
	s.sp--
	return s.data[s.sp], nil
}

// Depth returns the number of return addresses currently on the stack.
func (s *Stack) Depth() int {
	return s.sp
}
