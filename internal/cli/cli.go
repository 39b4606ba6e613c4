// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/chip8go/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8go [options] <rom file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the rom file, please pass the rom file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions normalizes and validates option values
func validateOptions(opts options.Program) error {
	if opts.ClockHz <= 0 {
		return fmt.Errorf("invalid clock rate %d, must be positive", opts.ClockHz)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale factor %d, must be positive", opts.Scale)
	}
	return nil
}

// readOptionFlags binds the command line flags to the option fields.
func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.ClockHz, "hz", opts.ClockHz, "CPU clock rate in instructions per second")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "window scale factor")
	flags.BoolVar(&opts.NoAudio, "no-audio", false, "disable the beeper")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly of the rom and exit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction (implies -debug)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.BoolVar(&opts.Quirks.VFReset, "vf-reset", opts.Quirks.VFReset,
		"reset VF after the bitwise AND, OR and XOR opcodes")
	flags.BoolVar(&opts.Quirks.MemoryIncrement, "memory-increment", opts.Quirks.MemoryIncrement,
		"leave I pointing past the last byte after register dump and load")
	flags.BoolVar(&opts.Quirks.DisplayWait, "display-wait", opts.Quirks.DisplayWait,
		"limit draws to one per 60Hz tick interval")
	flags.BoolVar(&opts.Quirks.Clipping, "clipping", opts.Quirks.Clipping,
		"clip sprites at the screen edges instead of wrapping")
	flags.BoolVar(&opts.Quirks.Shifting, "shifting", opts.Quirks.Shifting,
		"shift opcodes operate on VX only, ignoring VY")
	flags.BoolVar(&opts.Quirks.Jumping, "jumping", opts.Quirks.Jumping,
		"Bnnn adds the register selected by the high nibble instead of V0")
}
