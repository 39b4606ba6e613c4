package chip8

import "fmt"

// execute dispatches and runs a single decoded instruction. The instruction
// fields follow the usual CHIP-8 conventions:
//
//	x, y = register indices from the second and third nibble
//	n    = low nibble
//	kk   = low byte
//	nnn  = low 12 bits
//
// Errors are detected before any state mutation so a failing instruction
// leaves the VM unchanged apart from the already advanced program counter.
func (vm *VM) execute(opcode uint16) error {
	x := uint8(opcode >> 8 & 0x0F)
	y := uint8(opcode >> 4 & 0x0F)
	n := uint8(opcode & 0x000F)
	kk := uint8(opcode & 0x00FF)
	nnn := opcode & 0x0FFF

	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0: // CLS
			vm.display.Clear()
		case 0x00EE: // RET
			addr, err := vm.stack.Pop()
			if err != nil {
				return fmt.Errorf("opcode %04X: %w", opcode, err)
			}
			vm.regs.PC = addr
		default:
			// 0nnn machine code routines are not supported
			return invalidOpcode(opcode)
		}

	case 0x1: // JP nnn
		vm.regs.PC = nnn

	case 0x2: // CALL nnn
		if err := vm.stack.Push(vm.regs.PC); err != nil {
			return fmt.Errorf("opcode %04X: %w", opcode, err)
		}
		vm.regs.PC = nnn

	case 0x3: // SE Vx, kk
		if vm.regs.V[x] == kk {
			vm.regs.PC += 2
		}

	case 0x4: // SNE Vx, kk
		if vm.regs.V[x] != kk {
			vm.regs.PC += 2
		}

	case 0x5: // SE Vx, Vy
		if n != 0 {
			return invalidOpcode(opcode)
		}
		if vm.regs.V[x] == vm.regs.V[y] {
			vm.regs.PC += 2
		}

	case 0x6: // LD Vx, kk
		vm.regs.V[x] = kk

	case 0x7: // ADD Vx, kk
		vm.regs.V[x] += kk

	case 0x8:
		return vm.executeLogic(opcode, x, y, n)

	case 0x9: // SNE Vx, Vy
		if n != 0 {
			return invalidOpcode(opcode)
		}
		if vm.regs.V[x] != vm.regs.V[y] {
			vm.regs.PC += 2
		}

	case 0xA: // LD I, nnn
		vm.regs.I = nnn

	case 0xB: // JP V0, nnn
		target := uint32(nnn) + uint32(vm.regs.V[0])
		if vm.quirks.Jumping {
			// the register is selected by the high nibble of the address
			target = uint32(nnn) + uint32(vm.regs.V[x])
		}
		if target > MaxAddress {
			return fmt.Errorf("opcode %04X: jump target %04X: %w",
				opcode, target, ErrMemoryOutOfBounds)
		}
		vm.regs.PC = uint16(target)

	case 0xC: // RND Vx, kk
		vm.regs.V[x] = vm.rand() & kk

	case 0xD: // DRW Vx, Vy, n
		return vm.executeDraw(x, y, n)

	case 0xE:
		switch kk {
		case 0x9E: // SKP Vx
			if vm.keypad.Down(vm.regs.V[x]) {
				vm.regs.PC += 2
			}
		case 0xA1: // SKNP Vx
			if !vm.keypad.Down(vm.regs.V[x]) {
				vm.regs.PC += 2
			}
		default:
			return invalidOpcode(opcode)
		}

	case 0xF:
		return vm.executeMisc(opcode, x, kk)
	}

	return nil
}

// executeLogic runs the 8xyn register-register group. Every member has a
// defined VF outcome; the vf_reset quirk additionally forces VF to 0 after
// the bitwise OR, AND and XOR variants.
func (vm *VM) executeLogic(opcode uint16, x, y, n uint8) error {
	switch n {
	case 0x0: // LD Vx, Vy
		vm.regs.V[x] = vm.regs.V[y]

	case 0x1: // OR Vx, Vy
		vm.regs.V[x] |= vm.regs.V[y]
		if vm.quirks.VFReset {
			vm.regs.setFlag(0)
		}

	case 0x2: // AND Vx, Vy
		vm.regs.V[x] &= vm.regs.V[y]
		if vm.quirks.VFReset {
			vm.regs.setFlag(0)
		}

	case 0x3: // XOR Vx, Vy
		vm.regs.V[x] ^= vm.regs.V[y]
		if vm.quirks.VFReset {
			vm.regs.setFlag(0)
		}

	case 0x4: // ADD Vx, Vy
		sum := uint16(vm.regs.V[x]) + uint16(vm.regs.V[y])
		vm.regs.V[x] = uint8(sum)
		vm.regs.setFlag(flag(sum > 0xFF))

	case 0x5: // SUB Vx, Vy
		noBorrow := vm.regs.V[x] >= vm.regs.V[y]
		vm.regs.V[x] -= vm.regs.V[y]
		vm.regs.setFlag(flag(noBorrow))

	case 0x6: // SHR Vx {, Vy}
		src := vm.regs.V[y]
		if vm.quirks.Shifting {
			src = vm.regs.V[x]
		}
		vm.regs.V[x] = src >> 1
		vm.regs.setFlag(src & 0x01)

	case 0x7: // SUBN Vx, Vy
		noBorrow := vm.regs.V[y] >= vm.regs.V[x]
		vm.regs.V[x] = vm.regs.V[y] - vm.regs.V[x]
		vm.regs.setFlag(flag(noBorrow))

	case 0xE: // SHL Vx {, Vy}
		src := vm.regs.V[y]
		if vm.quirks.Shifting {
			src = vm.regs.V[x]
		}
		vm.regs.V[x] = src << 1
		vm.regs.setFlag(src >> 7)

	default:
		return invalidOpcode(opcode)
	}

	return nil
}

// executeDraw runs the Dxyn draw opcode. Under the display wait quirk at
// most one draw happens per tick interval: a second draw in the same
// interval rewinds the program counter and suspends the VM until the next
// tick boundary, capping draw throughput at the tick rate.
func (vm *VM) executeDraw(x, y, n uint8) error {
	if vm.quirks.DisplayWait && vm.drewThisTick {
		vm.regs.PC -= 2
		vm.status = StatusAwaitingBlank
		return nil
	}

	if err := vm.memory.checkRange(vm.regs.I, uint16(n)); err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}
	sprite := vm.memory.data[vm.regs.I : vm.regs.I+uint16(n)]

	collision := vm.display.drawSprite(sprite, vm.regs.V[x], vm.regs.V[y], vm.quirks.Clipping)
	vm.regs.setFlag(flag(collision))
	vm.drewThisTick = true
	return nil
}

// executeMisc runs the Fxkk group.
func (vm *VM) executeMisc(opcode uint16, x, kk uint8) error {
	switch kk {
	case 0x07: // LD Vx, DT
		vm.regs.V[x] = vm.timers.Delay

	case 0x0A: // LD Vx, K
		// suspend until an edge-triggered key press arrives; presses that
		// happened before the wait began do not count
		vm.keypad.clearEdges()
		vm.waitRegister = x
		vm.status = StatusAwaitingKey

	case 0x15: // LD DT, Vx
		vm.timers.Delay = vm.regs.V[x]

	case 0x18: // LD ST, Vx
		vm.timers.Sound = vm.regs.V[x]

	case 0x1E: // ADD I, Vx
		vm.regs.I += uint16(vm.regs.V[x])

	case 0x29: // LD F, Vx
		vm.regs.I = fontAddress(vm.regs.V[x])

	case 0x33: // LD B, Vx
		if err := vm.memory.checkRange(vm.regs.I, 3); err != nil {
			return fmt.Errorf("storing bcd: %w", err)
		}
		value := vm.regs.V[x]
		vm.memory.data[vm.regs.I] = value / 100
		vm.memory.data[vm.regs.I+1] = value / 10 % 10
		vm.memory.data[vm.regs.I+2] = value % 10

	case 0x55: // LD [I], Vx
		if err := vm.memory.checkRange(vm.regs.I, uint16(x)+1); err != nil {
			return fmt.Errorf("storing registers: %w", err)
		}
		for i := uint16(0); i <= uint16(x); i++ {
			vm.memory.data[vm.regs.I+i] = vm.regs.V[i]
		}
		if vm.quirks.MemoryIncrement {
			vm.regs.I += uint16(x) + 1
		}

	case 0x65: // LD Vx, [I]
		if err := vm.memory.checkRange(vm.regs.I, uint16(x)+1); err != nil {
			return fmt.Errorf("loading registers: %w", err)
		}
		for i := uint16(0); i <= uint16(x); i++ {
			vm.regs.V[i] = vm.memory.data[vm.regs.I+i]
		}
		if vm.quirks.MemoryIncrement {
			vm.regs.I += uint16(x) + 1
		}

	default:
		return invalidOpcode(opcode)
	}

	return nil
}

func invalidOpcode(opcode uint16) error {
	return fmt.Errorf("opcode %04X: %w", opcode, ErrInvalidOpcode)
}
