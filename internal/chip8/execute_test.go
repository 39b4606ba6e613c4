package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// romFromOpcodes encodes instruction words as a big-endian ROM image.
func romFromOpcodes(opcodes ...uint16) []byte {
	rom := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		rom = append(rom, byte(op>>8), byte(op))
	}
	return rom
}

// testVM returns a VM with the given quirks and program loaded.
func testVM(t *testing.T, quirks Quirks, opcodes ...uint16) *VM {
	t.Helper()

	vm := New(Options{Quirks: quirks})
	assert.NoError(t, vm.LoadROM(romFromOpcodes(opcodes...)))
	return vm
}

func TestExecuteLoadAndAddImmediate(t *testing.T) {
	vm := testVM(t, Quirks{},
		0x6A12, // LD VA, 0x12
		0x7A01, // ADD VA, 0x01
		0x7AFF, // ADD VA, 0xFF (wraps mod 256)
	)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0x12), vm.regs.V[0xA])

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0x13), vm.regs.V[0xA])

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0x12), vm.regs.V[0xA])
}

func TestExecuteSkips(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		v        [16]uint8
		wantSkip bool
	}{
		{name: "se immediate taken", opcode: 0x3042, v: [16]uint8{0x42}, wantSkip: true},
		{name: "se immediate not taken", opcode: 0x3042, wantSkip: false},
		{name: "sne immediate taken", opcode: 0x4042, wantSkip: true},
		{name: "sne immediate not taken", opcode: 0x4042, v: [16]uint8{0x42}, wantSkip: false},
		{name: "se register taken", opcode: 0x5010, v: [16]uint8{7, 7}, wantSkip: true},
		{name: "se register not taken", opcode: 0x5010, v: [16]uint8{7, 8}, wantSkip: false},
		{name: "sne register taken", opcode: 0x9010, v: [16]uint8{7, 8}, wantSkip: true},
		{name: "sne register not taken", opcode: 0x9010, v: [16]uint8{7, 7}, wantSkip: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := testVM(t, Quirks{}, tt.opcode)
			vm.regs.V = tt.v

			assert.NoError(t, vm.Step())

			want := uint16(ProgramStart + 2)
			if tt.wantSkip {
				want += 2
			}
			assert.Equal(t, want, vm.regs.PC)
		})
	}
}

func TestExecuteJumpAndCall(t *testing.T) {
	t.Run("jump", func(t *testing.T) {
		vm := testVM(t, Quirks{}, 0x1234)
		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x234), vm.regs.PC)
	})

	t.Run("call and return", func(t *testing.T) {
		vm := testVM(t, Quirks{},
			0x2204, // CALL 0x204
			0x0000, // never executed
			0x00EE, // RET
		)

		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x204), vm.regs.PC)
		assert.Equal(t, 1, vm.stack.Depth())

		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x202), vm.regs.PC)
		assert.Equal(t, 0, vm.stack.Depth())
	})

	t.Run("return on empty stack", func(t *testing.T) {
		vm := testVM(t, Quirks{}, 0x00EE)
		assert.True(t, errors.Is(vm.Step(), ErrStackUnderflow))
	})
}

func TestExecuteLogicGroup(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		want   uint8
		wantVF uint8
	}{
		{name: "ld", opcode: 0x8120, vx: 0x00, vy: 0x42, want: 0x42, wantVF: 0xEE},
		{name: "or", opcode: 0x8121, vx: 0xF0, vy: 0x0F, want: 0xFF, wantVF: 0xEE},
		{name: "and", opcode: 0x8122, vx: 0xF0, vy: 0x3C, want: 0x30, wantVF: 0xEE},
		{name: "xor", opcode: 0x8123, vx: 0xFF, vy: 0x0F, want: 0xF0, wantVF: 0xEE},
		{name: "add no carry", opcode: 0x8124, vx: 0x01, vy: 0x02, want: 0x03, wantVF: 0},
		{name: "add carry", opcode: 0x8124, vx: 0xFF, vy: 0x02, want: 0x01, wantVF: 1},
		{name: "sub no borrow", opcode: 0x8125, vx: 0x05, vy: 0x03, want: 0x02, wantVF: 1},
		{name: "sub borrow", opcode: 0x8125, vx: 0x03, vy: 0x05, want: 0xFE, wantVF: 0},
		{name: "subn no borrow", opcode: 0x8127, vx: 0x03, vy: 0x05, want: 0x02, wantVF: 1},
		{name: "subn borrow", opcode: 0x8127, vx: 0x05, vy: 0x03, want: 0xFE, wantVF: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := testVM(t, Quirks{}, tt.opcode)
			vm.regs.V[1] = tt.vx
			vm.regs.V[2] = tt.vy
			vm.regs.V[0xF] = 0xEE // sentinel to detect flag writes

			assert.NoError(t, vm.Step())
			assert.Equal(t, tt.want, vm.regs.V[1])
			assert.Equal(t, tt.wantVF, vm.regs.V[0xF])
		})
	}
}

func TestExecuteVFResetQuirk(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
	}{
		{name: "or", opcode: 0x8121},
		{name: "and", opcode: 0x8122},
		{name: "xor", opcode: 0x8123},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := testVM(t, Quirks{VFReset: true}, tt.opcode)
			vm.regs.V[0xF] = 0xEE

			assert.NoError(t, vm.Step())
			assert.Equal(t, uint8(0), vm.regs.V[0xF])
		})
	}
}

func TestExecuteShiftQuirk(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		opcode uint16
		vx, vy uint8
		want   uint8
		wantVF uint8
	}{
		{name: "shr from vy", opcode: 0x8126, vx: 0x00, vy: 0x05, want: 0x02, wantVF: 1},
		{name: "shr from vx", quirks: Quirks{Shifting: true}, opcode: 0x8126, vx: 0x04, vy: 0x05, want: 0x02, wantVF: 0},
		{name: "shl from vy", opcode: 0x812E, vx: 0x00, vy: 0x81, want: 0x02, wantVF: 1},
		{name: "shl from vx", quirks: Quirks{Shifting: true}, opcode: 0x812E, vx: 0x41, vy: 0x81, want: 0x82, wantVF: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := testVM(t, tt.quirks, tt.opcode)
			vm.regs.V[1] = tt.vx
			vm.regs.V[2] = tt.vy

			assert.NoError(t, vm.Step())
			assert.Equal(t, tt.want, vm.regs.V[1])
			assert.Equal(t, tt.wantVF, vm.regs.V[0xF])
		})
	}
}

func TestExecuteJumpOffsetQuirk(t *testing.T) {
	t.Run("default adds v0", func(t *testing.T) {
		vm := testVM(t, Quirks{}, 0xB300)
		vm.regs.V[0] = 0x10
		vm.regs.V[3] = 0x20

		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x310), vm.regs.PC)
	})

	t.Run("jumping quirk selects vx", func(t *testing.T) {
		vm := testVM(t, Quirks{Jumping: true}, 0xB300)
		vm.regs.V[0] = 0x10
		vm.regs.V[3] = 0x20

		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x320), vm.regs.PC)
	})

	t.Run("target out of bounds", func(t *testing.T) {
		vm := testVM(t, Quirks{}, 0xBFFF)
		vm.regs.V[0] = 0x10

		err := vm.Step()
		assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
	})
}

func TestExecuteRandom(t *testing.T) {
	sequence := []uint8{0xAB, 0xFF}
	idx := 0
	vm := New(Options{Rand: func() uint8 {
		b := sequence[idx%len(sequence)]
		idx++
		return b
	}})
	assert.NoError(t, vm.LoadROM(romFromOpcodes(
		0xC1FF, // RND V1, 0xFF
		0xC200, // RND V2, 0x00 masks every random byte to zero
	)))

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0xAB), vm.regs.V[1])

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint8(0x00), vm.regs.V[2])
}

func TestExecuteKeySkips(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		keyDown  bool
		wantSkip bool
	}{
		{name: "skp key down", opcode: 0xE19E, keyDown: true, wantSkip: true},
		{name: "skp key up", opcode: 0xE19E, wantSkip: false},
		{name: "sknp key down", opcode: 0xE1A1, keyDown: true, wantSkip: false},
		{name: "sknp key up", opcode: 0xE1A1, wantSkip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := testVM(t, Quirks{}, tt.opcode)
			vm.regs.V[1] = 0x5
			var keys [KeyCount]bool
			keys[0x5] = tt.keyDown
			vm.SetKeys(keys)

			assert.NoError(t, vm.Step())

			want := uint16(ProgramStart + 2)
			if tt.wantSkip {
				want += 2
			}
			assert.Equal(t, want, vm.regs.PC)
		})
	}
}

func TestExecuteTimerOpcodes(t *testing.T) {
	vm := testVM(t, Quirks{},
		0x6130, // LD V1, 0x30
		0xF115, // LD DT, V1
		0xF207, // LD V2, DT
		0xF118, // LD ST, V1
	)

	for range 4 {
		assert.NoError(t, vm.Step())
	}

	assert.Equal(t, uint8(0x30), vm.timers.Delay)
	assert.Equal(t, uint8(0x30), vm.regs.V[2])
	assert.Equal(t, uint8(0x30), vm.timers.Sound)
	assert.True(t, vm.SoundActive())
}

func TestExecuteIndexOpcodes(t *testing.T) {
	vm := testVM(t, Quirks{},
		0xA123, // LD I, 0x123
		0x6105, // LD V1, 0x05
		0xF11E, // ADD I, V1
		0xF129, // LD F, V1
	)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x123), vm.regs.I)

	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x128), vm.regs.I)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(25), vm.regs.I) // glyph 5 at 5*5
}

func TestExecuteBCD(t *testing.T) {
	vm := testVM(t, Quirks{},
		0x61FE, // LD V1, 254
		0xA300, // LD I, 0x300
		0xF133, // LD B, V1
	)

	for range 3 {
		assert.NoError(t, vm.Step())
	}

	assert.Equal(t, byte(2), vm.memory.data[0x300])
	assert.Equal(t, byte(5), vm.memory.data[0x301])
	assert.Equal(t, byte(4), vm.memory.data[0x302])
}

func TestExecuteMemoryIncrementQuirk(t *testing.T) {
	t.Run("store with increment", func(t *testing.T) {
		vm := testVM(t, Quirks{MemoryIncrement: true}, 0xF355) // LD [I], V3
		vm.regs.I = 0x300
		vm.regs.V = [16]uint8{0x10, 0x11, 0x12, 0x13}

		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x304), vm.regs.I)
		for i := range 4 {
			assert.Equal(t, byte(0x10+i), vm.memory.data[0x300+i])
		}
	})

	t.Run("store without increment", func(t *testing.T) {
		vm := testVM(t, Quirks{}, 0xF355)
		vm.regs.I = 0x300

		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x300), vm.regs.I)
	})

	t.Run("load with increment", func(t *testing.T) {
		vm := testVM(t, Quirks{MemoryIncrement: true}, 0xF265) // LD V2, [I]
		vm.regs.I = 0x400
		copy(vm.memory.data[0x400:], []byte{0x21, 0x22, 0x23})

		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x403), vm.regs.I)
		assert.Equal(t, uint8(0x21), vm.regs.V[0])
		assert.Equal(t, uint8(0x22), vm.regs.V[1])
		assert.Equal(t, uint8(0x23), vm.regs.V[2])
	})

	t.Run("load without increment", func(t *testing.T) {
		vm := testVM(t, Quirks{}, 0xF265)
		vm.regs.I = 0x400

		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x400), vm.regs.I)
	})
}

func TestExecuteMemoryOutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		index  uint16
	}{
		{name: "draw sprite past end", opcode: 0xD015, index: 0xFFE},
		{name: "bcd past end", opcode: 0xF033, index: 0xFFE},
		{name: "store registers past end", opcode: 0xF755, index: 0xFFC},
		{name: "load registers past end", opcode: 0xF765, index: 0xFFC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := testVM(t, Quirks{}, tt.opcode)
			vm.regs.I = tt.index

			err := vm.Step()
			assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
		})
	}
}

func TestExecuteInvalidOpcodes(t *testing.T) {
	opcodes := []uint16{
		0x0000, // SYS is unsupported
		0x0123,
		0x5011, // SE with nonzero low nibble
		0x9011, // SNE with nonzero low nibble
		0x8018,
		0xE100,
		0xF1FF,
	}

	for _, opcode := range opcodes {
		vm := testVM(t, Quirks{}, opcode)

		err := vm.Step()
		assert.True(t, errors.Is(err, ErrInvalidOpcode))
		// decode failed after the fetch, no other state was touched
		assert.Equal(t, uint16(ProgramStart+2), vm.regs.PC)
	}
}
