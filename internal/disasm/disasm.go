// Package disasm decodes CHIP-8 instruction words into assembly mnemonics.
// It backs the ROM listing mode and the execution trace log of the emulator.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Decode returns the instruction definition matching a 16-bit opcode word,
// or false if the word does not match any known instruction pattern.
func Decode(opcode uint16) (*chip8.Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction, true
		}
	}
	return nil, false
}

// Format returns the assembly representation of an opcode word. Words that
// do not decode to an instruction are emitted as data bytes.
func Format(opcode uint16) string {
	ins, ok := Decode(opcode)
	if !ok {
		return fmt.Sprintf(".byte $%02X, $%02X", opcode>>8, opcode&0xFF)
	}

	if params := formatParams(ins.Name, opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// Listing writes a flat disassembly listing of a ROM image, one instruction
// word per line, addressed relative to the program start at 0x200.
func Listing(w io.Writer, rom []byte) error {
	const programStart = 0x200

	for offset := 0; offset+1 < len(rom); offset += 2 {
		opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		_, err := fmt.Fprintf(w, "%04X:  %02X %02X  %s\n",
			programStart+offset, rom[offset], rom[offset+1], Format(opcode))
		if err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}

	if len(rom)%2 != 0 {
		last := rom[len(rom)-1]
		_, err := fmt.Fprintf(w, "%04X:  %02X     .byte $%02X\n",
			programStart+len(rom)-1, last, last)
		if err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}

// formatParams formats the instruction parameters embedded in the opcode
// word. Returns an empty string for parameterless instructions.
func formatParams(name string, opcode uint16) string {
	x := registerX(opcode)
	y := registerY(opcode)

	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""

	case chip8.JpName:
		if opcode&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
		}
		return fmt.Sprintf("$%03X", opcode&0x0FFF)

	case chip8.CallName:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)

	case chip8.SeName, chip8.SneName:
		if opcode&0xF000 == 0x5000 || opcode&0xF000 == 0x9000 {
			return fmt.Sprintf("V%X, V%X", x, y)
		}
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)

	case chip8.LdName:
		return formatLoadParams(opcode, x, y)

	case chip8.AddName:
		switch opcode & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
		case 0x8000:
			return fmt.Sprintf("V%X, V%X", x, y)
		default: // Fx1E
			return fmt.Sprintf("I, V%X", x)
		}

	case chip8.OrName, chip8.AndName, chip8.XorName,
		chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", x, y)

	case chip8.ShrName, chip8.ShlName:
		return fmt.Sprintf("V%X, V%X", x, y)

	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)

	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, opcode&0x000F)

	case chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", x)
	}
	return ""
}

// formatLoadParams formats the parameters of the many load instruction
// variants.
func formatLoadParams(opcode, x, y uint16) string {
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	}

	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// registerX extracts the X register nibble from an opcode word.
func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from an opcode word.
func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
