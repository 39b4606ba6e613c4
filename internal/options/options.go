// Package options contains the program options.
package options

import (
	"github.com/retroenv/chip8go/internal/chip8"
)

// Default values for the emulation options.
const (
	DefaultClockHz = 700 // instruction cycles per second
	DefaultScale   = 10  // window pixels per framebuffer pixel
)

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file to run
}

// Flags contains behavior options.
type Flags struct {
	ClockHz int  // CPU clock rate in instructions per second
	Scale   int  // integer window scale factor
	NoAudio bool // disable the beeper
	Disasm  bool // print a ROM disassembly listing and exit
	Trace   bool // log every executed instruction
	Debug   bool // enable debug logging
	Quiet   bool // quiet mode
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags

	Quirks chip8.Quirks
}

// NewProgram returns program options with default values and the original
// interpreter quirk behaviors.
func NewProgram() Program {
	return Program{
		Flags: Flags{
			ClockHz: DefaultClockHz,
			Scale:   DefaultScale,
		},
		Quirks: chip8.DefaultQuirks(),
	}
}
