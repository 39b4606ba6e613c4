package chip8

import "fmt"

// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: interpreter area, holds the built-in font sprites
//	0x200-0xFFF: user program space (3584 bytes)
const (
	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = 4096

	// ProgramStart is the address where programs are loaded and begin
	// execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in the CHIP-8 address space.
	MaxAddress = 0xFFF

	// MaxROMSize is the largest program that fits into the program space.
	MaxROMSize = MemorySize - ProgramStart

	// fontGlyphSize is the size of one built-in hexadecimal digit sprite.
	fontGlyphSize = 5
)

// font contains the built-in sprites for the hexadecimal digits 0-F,
// 5 bytes per glyph. Some programs expect the font to start at 0x000.
var font = [16 * fontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4KB byte store of the VM. All accesses are bounds
// checked, an address outside 0x000-0xFFF is an error and never wraps.
type Memory struct {
	data [MemorySize]byte
}

// newMemory returns a memory with the font sprites loaded at address 0.
func newMemory() Memory {
	var m Memory
	copy(m.data[:], font[:])
	return m
}

// Read returns the byte at the given address.
func (m *Memory) Read(addr uint16) (byte, error) {
	if addr > MaxAddress {
		return 0, fmt.Errorf("reading address %04X: %w", addr, ErrMemoryOutOfBounds)
	}
	return m.data[addr], nil
}

// Write stores a byte at the given address.
func (m *Memory) Write(addr uint16, value byte) error {
	if addr > MaxAddress {
		return fmt.Errorf("writing address %04X: %w", addr, ErrMemoryOutOfBounds)
	}
	m.data[addr] = value
	return nil
}

// checkRange verifies that the range [addr, addr+length) lies inside the
// address space. Used to validate multi byte accesses before any mutation.
func (m *Memory) checkRange(addr uint16, length uint16) error {
	if length == 0 {
		return nil
	}
	last := uint32(addr) + uint32(length) - 1
	if last > MaxAddress {
		return fmt.Errorf("accessing range %04X-%04X: %w", addr, last, ErrMemoryOutOfBounds)
	}
	return nil
}

// loadROM copies a program into the program space at 0x200.
func (m *Memory) loadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%d bytes exceed the %d byte program space: %w",
			len(rom), MaxROMSize, ErrRomTooLarge)
	}
	copy(m.data[ProgramStart:], rom)
	return nil
}

// fontAddress returns the address of the built-in sprite for a hexadecimal
// digit. Only the low nibble of the digit is used.
func fontAddress(digit byte) uint16 {
	return uint16(digit&0x0F) * fontGlyphSize
}
