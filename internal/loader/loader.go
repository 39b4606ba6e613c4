// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/chip8go/internal/chip8"
)

// Load reads a CHIP-8 ROM file and returns its raw bytes. The size limit of
// the program space is enforced here so oversized files are rejected before
// a VM is constructed.
func Load(path string) ([]byte, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if len(rom) > chip8.MaxROMSize {
		return nil, fmt.Errorf("file %s has %d bytes: %w",
			path, len(rom), chip8.ErrRomTooLarge)
	}
	return rom, nil
}
