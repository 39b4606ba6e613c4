package disasm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   *chip8.Instruction
	}{
		{opcode: 0x00E0, want: chip8.ClsInst},
		{opcode: 0x00EE, want: chip8.RetInst},
		{opcode: 0x1234, want: chip8.JpInst},
		{opcode: 0x2345, want: chip8.CallInst},
		{opcode: 0x3042, want: chip8.SeInst},
		{opcode: 0x6110, want: chip8.LdInst},
		{opcode: 0x8124, want: chip8.AddInst},
		{opcode: 0x8126, want: chip8.ShrInst},
		{opcode: 0xA300, want: chip8.LdInst},
		{opcode: 0xC1FF, want: chip8.RndInst},
		{opcode: 0xD125, want: chip8.DrwInst},
		{opcode: 0xE19E, want: chip8.SkpInst},
		{opcode: 0xF10A, want: chip8.LdInst},
		{opcode: 0xF155, want: chip8.LdInst},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.opcode), func(t *testing.T) {
			ins, ok := Decode(tt.opcode)
			assert.True(t, ok)
			assert.Equal(t, tt.want.Name, ins.Name)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{opcode: 0x00E0, want: chip8.ClsName},
		{opcode: 0x1234, want: chip8.JpName + " $234"},
		{opcode: 0x2345, want: chip8.CallName + " $345"},
		{opcode: 0x3042, want: chip8.SeName + " V0, $42"},
		{opcode: 0x5120, want: chip8.SeName + " V1, V2"},
		{opcode: 0x6110, want: chip8.LdName + " V1, $10"},
		{opcode: 0x8120, want: chip8.LdName + " V1, V2"},
		{opcode: 0x8124, want: chip8.AddName + " V1, V2"},
		{opcode: 0xA300, want: chip8.LdName + " I, $300"},
		{opcode: 0xB123, want: chip8.JpName + " V0, $123"},
		{opcode: 0xC1FF, want: chip8.RndName + " V1, $FF"},
		{opcode: 0xD125, want: chip8.DrwName + " V1, V2, $5"},
		{opcode: 0xE19E, want: chip8.SkpName + " V1"},
		{opcode: 0xF107, want: chip8.LdName + " V1, DT"},
		{opcode: 0xF10A, want: chip8.LdName + " V1, K"},
		{opcode: 0xF11E, want: chip8.AddName + " I, V1"},
		{opcode: 0xF129, want: chip8.LdName + " F, V1"},
		{opcode: 0xF133, want: chip8.LdName + " B, V1"},
		{opcode: 0xF155, want: chip8.LdName + " [I], V1"},
		{opcode: 0xF165, want: chip8.LdName + " V1, [I]"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.opcode), func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.opcode))
		})
	}
}

func TestFormatUnknownOpcode(t *testing.T) {
	assert.Equal(t, ".byte $FF, $FF", Format(0xFFFF))
}

func TestListing(t *testing.T) {
	rom := []byte{
		0x00, 0xE0, // CLS
		0x12, 0x00, // JP $200
		0xAB, // trailing data byte
	}

	var sb strings.Builder
	assert.NoError(t, Listing(&sb, rom))

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "0200:  00 E0  "))
	assert.True(t, strings.HasPrefix(lines[1], "0202:  12 00  "))
	assert.Contains(t, lines[2], ".byte $AB")
}
