package chip8

// Quirks configures the opcode behaviors that diverged between historical
// CHIP-8 interpreters. A VM receives its quirk set at construction time and
// keeps it for its whole lifetime.
type Quirks struct {
	// VFReset forces VF to 0 after the bitwise AND, OR and XOR opcodes.
	VFReset bool
	// MemoryIncrement leaves the index register pointing one past the last
	// byte accessed by the register dump and load opcodes (I += X + 1).
	MemoryIncrement bool
	// DisplayWait limits draw opcodes to one per 60 Hz tick interval, the
	// vertical blank behavior of the original interpreter.
	DisplayWait bool
	// Clipping drops sprite pixels past the right and bottom screen edges
	// instead of wrapping them to the opposite edge.
	Clipping bool
	// Shifting makes the shift opcodes operate on VX only, ignoring VY.
	Shifting bool
	// Jumping makes Bnnn add the register selected by the high nibble of the
	// address field instead of V0 to the jump target.
	Jumping bool
}

// DefaultQuirks returns the behaviors of the original COSMAC VIP interpreter.
func DefaultQuirks() Quirks {
	return Quirks{
		VFReset:         true,
		MemoryIncrement: true,
		DisplayWait:     true,
		Clipping:        true,
	}
}
