package chip8

// flagRegister is the index of VF, the register that receives carry, borrow,
// shift-out and collision results.
const flagRegister = 0xF

// Registers is the CHIP-8 register file: 16 general purpose 8-bit registers,
// the 16-bit index register I and the program counter.
type Registers struct {
	V  [16]uint8
	I  uint16
	PC uint16
}

// newRegisters returns a register file in power-on state, with the program
// counter pointing at the program start address.
func newRegisters() Registers {
	return Registers{PC: ProgramStart}
}

// setFlag writes the flags register VF.
func (r *Registers) setFlag(value uint8) {
	r.V[flagRegister] = value
}

// flag converts a condition into the 0/1 value stored in VF.
func flag(condition bool) uint8 {
	if condition {
		return 1
	}
	return 0
}
